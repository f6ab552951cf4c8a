package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"trainhub/internal/config"
	"trainhub/internal/utils/crypto"
	"trainhub/internal/utils/logger"

	"github.com/joho/godotenv"
)

// certutil signs and verifies completion certificates from the command
// line, plus raw encrypt/decrypt for secrets kept in the environment.
func main() {
	var log = logger.New("certutil")
	log.Info("🔑 Starting certificate helper CLI")

	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Error("❌ Failed to load configuration", err)
		return
	}
	if err := crypto.InitializeKeys(cfg.Crypto.PrivateKey); err != nil {
		log.Error("❌ Failed to initialize keys", err)
		return
	}

	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print("Enter 's' to sign a certificate, 'v' to verify, 'e' to encrypt, 'd' to decrypt, or 'q' to quit: ")
		choice, _ := reader.ReadString('\n')
		choice = strings.TrimSpace(choice)

		switch choice {
		case "q":
			log.Info("👋 Exiting certificate helper")
			return

		case "s":
			fmt.Print("Trainee email: ")
			email, _ := reader.ReadString('\n')
			fmt.Print("Module code: ")
			module, _ := reader.ReadString('\n')

			certificate, err := crypto.SignCompletionCertificate(
				strings.TrimSpace(email), strings.TrimSpace(module), time.Now())
			if err != nil {
				log.Error("❌ Signing failed", err)
			} else {
				log.Success("✅ Certificate: %s", certificate)
			}

		case "v":
			fmt.Print("Certificate: ")
			certificate, _ := reader.ReadString('\n')

			claims, err := crypto.VerifyCompletionCertificate(strings.TrimSpace(certificate))
			if err != nil {
				log.Error("❌ Verification failed", err)
			} else {
				log.Success("✅ Valid: %s completed %s at %s",
					claims.TraineeEmail, claims.Module, time.Unix(claims.CompletedAt, 0).Format(time.RFC3339))
			}

		case "e":
			fmt.Print("Enter the string to encrypt: ")
			input, _ := reader.ReadString('\n')

			encrypted, err := crypto.Encrypt(strings.TrimSpace(input))
			if err != nil {
				log.Error("❌ Encryption failed", err)
			} else {
				log.Success("✅ Encrypted string: %s", encrypted)
			}

		case "d":
			fmt.Print("Enter the string to decrypt: ")
			input, _ := reader.ReadString('\n')

			decrypted, err := crypto.Decrypt(strings.TrimSpace(input))
			if err != nil {
				log.Error("❌ Decryption failed", err)
			} else {
				log.Success("✅ Decrypted string: %s", decrypted)
			}

		default:
			log.Warn("⚠️ Invalid choice. Please enter 's', 'v', 'e', 'd', or 'q'.")
		}
	}
}
