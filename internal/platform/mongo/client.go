// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mongo provides a managed MongoDB client for the document-store backend.

It mirrors the postgres and redis packages: one long-lived client is created
at startup, validated with a ping, and shared by every request.
*/
package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// Opinionated client settings.
const (
	connectTimeout         = 5 * time.Second
	serverSelectionTimeout = 5 * time.Second
	pingTimeout            = 2 * time.Second
	maxPoolSize            = 25
)

// NewClient connects to MongoDB and returns the client with the database to use.
//
// # Parameters
//   - ctx: Context for the initial connection attempt.
//   - uri: A mongodb:// or mongodb+srv:// connection string.
//   - fallbackDatabase: Database name used when the URI has no path.
//   - logger: Structured logger for connection events.
func NewClient(ctx context.Context, uri, fallbackDatabase string, logger *slog.Logger) (*mongo.Client, *mongo.Database, error) {
	parsed, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo: invalid URI: %w", err)
	}

	clientOptions := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(connectTimeout).
		SetServerSelectionTimeout(serverSelectionTimeout).
		SetMaxPoolSize(maxPoolSize)

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo: failed to connect: %w", err)
	}

	if err := Ping(ctx, client); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	databaseName := DatabaseName(parsed.Database, fallbackDatabase)

	logger.Info("mongo client connected",
		slog.String("hosts", strings.Join(parsed.Hosts, ",")),
		slog.String("database", databaseName),
	)

	return client, client.Database(databaseName), nil
}

// DatabaseName picks the database from the URI path, falling back when it is empty.
func DatabaseName(fromURI, fallback string) string {
	if fromURI != "" {
		return fromURI
	}
	return fallback
}

// Ping verifies that the primary is reachable.
func Ping(ctx context.Context, client *mongo.Client) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo: ping failed: %w", err)
	}

	return nil
}
