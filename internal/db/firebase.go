package db

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	fbdb "firebase.google.com/go/v4/db"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/example/portfolio-admin/internal/config"
)

// FirebaseClients holds the Firebase Admin SDK clients the configuration asked
// for. Fields for services that are not in use stay nil.
type FirebaseClients struct {
	App       *firebase.App
	Realtime  *fbdb.Client
	Auth      *auth.Client
	Firestore *firestore.Client
}

// Close releases clients that hold connections.
func (c *FirebaseClients) Close() error {
	if c == nil || c.Firestore == nil {
		return nil
	}
	return c.Firestore.Close()
}

// InitFirebase initializes the Firebase Admin SDK and the clients required by
// appConfig: Realtime Database for content, Auth for token checks and
// Firestore for theme preferences.
func InitFirebase(ctx context.Context, appConfig *config.Config, logger *zap.Logger) (*FirebaseClients, error) {
	if appConfig == nil {
		return nil, fmt.Errorf("InitFirebase: appConfig cannot be nil")
	}

	var credsOption option.ClientOption
	switch {
	case appConfig.GoogleApplicationCredentials != "":
		logger.Info("Initializing Firebase with credentials file", zap.String("path", appConfig.GoogleApplicationCredentials))
		if _, err := os.Stat(appConfig.GoogleApplicationCredentials); os.IsNotExist(err) {
			logger.Warn("Credentials file in GOOGLE_APPLICATION_CREDENTIALS does not exist", zap.String("path", appConfig.GoogleApplicationCredentials))
		}
		credsOption = option.WithCredentialsFile(appConfig.GoogleApplicationCredentials)
	case appConfig.FirebaseServiceAccountJSONBase64 != "":
		logger.Info("Initializing Firebase with Base64 encoded service account JSON")
		decodedJSON, err := base64.StdEncoding.DecodeString(appConfig.FirebaseServiceAccountJSONBase64)
		if err != nil {
			return nil, fmt.Errorf("failed to decode FIREBASE_SERVICE_ACCOUNT_JSON_BASE64: %w", err)
		}
		credsOption = option.WithCredentialsJSON(decodedJSON)
	default:
		logger.Info("Initializing Firebase using Application Default Credentials")
	}

	fbConfig := &firebase.Config{
		ProjectID:   appConfig.FirebaseProjectID,
		DatabaseURL: appConfig.FirebaseDatabaseURL,
	}

	var opts []option.ClientOption
	if credsOption != nil {
		opts = append(opts, credsOption)
	}
	app, err := firebase.NewApp(ctx, fbConfig, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase.NewApp: %w", err)
	}

	clients := &FirebaseClients{App: app}

	if appConfig.DBBackend == config.DBBackendFirebase {
		rt, err := app.Database(ctx)
		if err != nil {
			return nil, fmt.Errorf("app.Database: %w", err)
		}
		clients.Realtime = rt
		logger.Info("Realtime Database client initialized", zap.String("url", appConfig.FirebaseDatabaseURL))
	}

	if appConfig.AuthMode == config.AuthModeFirebase {
		authCl, err := app.Auth(ctx)
		if err != nil {
			return nil, fmt.Errorf("app.Auth: %w", err)
		}
		clients.Auth = authCl
		logger.Info("Firebase Auth client initialized")
	}

	if appConfig.PrefsBackend == config.PrefsBackendFirestore {
		fs, err := app.Firestore(ctx)
		if err != nil {
			return nil, fmt.Errorf("app.Firestore: %w", err)
		}
		clients.Firestore = fs
		logger.Info("Firestore client initialized")
	}

	return clients, nil
}

// Open returns the content Database selected by DB_BACKEND. The Firebase
// clients are returned alongside so callers can reuse Auth and Firestore;
// they are nil when Firebase is not needed at all.
func Open(ctx context.Context, appConfig *config.Config, logger *zap.Logger) (Database, *FirebaseClients, error) {
	var clients *FirebaseClients
	if appConfig.NeedsFirebase() {
		var err error
		clients, err = InitFirebase(ctx, appConfig, logger)
		if err != nil {
			return nil, nil, err
		}
	}

	if appConfig.DBBackend == config.DBBackendMemory {
		logger.Warn("Using in-memory content database; data is lost on restart")
		return NewMemoryDatabase(), clients, nil
	}
	return NewRealtimeDatabase(clients.Realtime), clients, nil
}
