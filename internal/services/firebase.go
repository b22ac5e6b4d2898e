package services

import (
	"context"
	"fmt"
	"log"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var (
	// FirebaseApp is the Firebase app instance
	FirebaseApp *firebase.App
	// MessagingClient is the Firebase Cloud Messaging client
	MessagingClient *messaging.Client
)

// InitFirebase initializes Firebase Admin SDK
func InitFirebase() error {
	ctx := context.Background()

	// Check if Firebase is configured
	serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
	if serviceAccountPath == "" {
		log.Println("Warning: FIREBASE_SERVICE_ACCOUNT_PATH not set. Push notifications will be disabled.")
		return nil
	}

	opt := option.WithCredentialsFile(serviceAccountPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return fmt.Errorf("error initializing firebase app: %v", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return fmt.Errorf("error getting messaging client: %v", err)
	}

	FirebaseApp = app
	MessagingClient = client

	log.Println("Firebase Cloud Messaging initialized successfully")
	return nil
}

// PushResult records the outcome of a single-token send.
type PushResult struct {
	Token    string
	Response string
	Err      error
}

// SendPushNotification delivers one notification to every device token of a
// receiver. Empty tokens are filtered out and an empty token set is not an
// error: push delivery is best effort and must never fail the caller.
func SendPushNotification(ctx context.Context, deviceTokens []string, title, body string, dataPayload map[string]string) []PushResult {
	if MessagingClient == nil {
		log.Println("Warning: Firebase not initialized. Skipping push notification.")
		return nil
	}

	tokens := make([]string, 0, len(deviceTokens))
	for _, token := range deviceTokens {
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	if len(tokens) == 0 {
		log.Println("No device tokens provided. Skipping push notification.")
		return nil
	}

	results := make([]PushResult, 0, len(tokens))
	for _, token := range tokens {
		message := &messaging.Message{
			Token: token,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Data: dataPayload,
			Android: &messaging.AndroidConfig{
				// Immediate delivery on Android
				Priority: "high",
			},
		}

		response, err := MessagingClient.Send(ctx, message)
		if err != nil {
			log.Printf("Error sending push to token %s: %v", token, err)
			results = append(results, PushResult{Token: token, Err: err})
			continue
		}
		results = append(results, PushResult{Token: token, Response: response})
	}

	return results
}
