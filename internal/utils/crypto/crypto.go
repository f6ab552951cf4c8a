package crypto

import (
	base64_ "trainhub/internal/utils/base64"
	"trainhub/internal/utils/logger"

	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/ssh"
)

var log = logger.New("crypto")

var PrivateKey *rsa.PrivateKey
var PublicKey *rsa.PublicKey

func InitializeKeys(privateKeyEnv string) error {

	log.Info("Initializing keys")

	if privateKeyEnv == "" {
		return errors.New("private key not found")
	}

	privateKeyEnv, err := base64_.DecodeFromBase64(privateKeyEnv)

	if err != nil {
		return fmt.Errorf("failed to decode private key: %w", err)
	}

	key, err := ssh.ParseRawPrivateKey([]byte(privateKeyEnv))

	if err != nil {
		return fmt.Errorf("failed to parse private key: %w", err)
	}

	PrivateKey = key.(*rsa.PrivateKey)
	PublicKey = &PrivateKey.PublicKey
	return nil
}

// CertificateClaims attests that a trainee completed a training module.
type CertificateClaims struct {
	TraineeEmail string `json:"trainee_email"`
	Module       string `json:"module"`
	CompletedAt  int64  `json:"completed_at"`
	jwt.RegisteredClaims
}

// SignCompletionCertificate returns an RS256-signed token for a completed
// training module.
func SignCompletionCertificate(traineeEmail, module string, completedAt time.Time) (string, error) {
	if PrivateKey == nil {
		return "", errors.New("private key not initialized")
	}

	claims := CertificateClaims{
		TraineeEmail: traineeEmail,
		Module:       module,
		CompletedAt:  completedAt.Unix(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(PrivateKey)
}

// VerifyCompletionCertificate checks a certificate's signature and returns
// its claims.
func VerifyCompletionCertificate(certificate string) (*CertificateClaims, error) {
	if PublicKey == nil {
		return nil, errors.New("public key not initialized")
	}

	claims := &CertificateClaims{}
	token, err := jwt.ParseWithClaims(certificate, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return PublicKey, nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}

	return claims, nil
}

// Encrypt encrypts short secrets (e.g. SMTP or API credentials) with the
// service key
func Encrypt(plaintext string) (string, error) {
	if PublicKey == nil {
		return "", errors.New("public key not initialized")
	}

	ciphertext, err := rsa.EncryptOAEP(
		sha256.New(),
		rand.Reader,
		PublicKey,
		[]byte(plaintext),
		nil,
	)

	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt reverses Encrypt
func Decrypt(ciphertext string) (string, error) {
	if PrivateKey == nil {
		return "", errors.New("private key not initialized")
	}

	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", err
	}

	plaintext, err := rsa.DecryptOAEP(
		sha256.New(),
		rand.Reader,
		PrivateKey,
		data,
		nil,
	)

	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}
