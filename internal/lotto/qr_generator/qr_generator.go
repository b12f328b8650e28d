package qr

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"ms-lotto/internal/models"

	"github.com/skip2/go-qrcode"
)

var ErrInvalidQRData = errors.New("invalid QR data")

type QRGenerator struct {
	secret []byte
}

func NewQRGenerator(secret string) *QRGenerator {
	hashed := sha256.Sum256([]byte(secret)) // normalize to 32 bytes
	return &QRGenerator{secret: hashed[:]}
}

// GenerateEncryptedQR renders a 256px PNG whose content is the encrypted payload.
func (q *QRGenerator) GenerateEncryptedQR(payload models.TicketQRPayload) ([]byte, error) {
	encrypted, err := q.EncryptPayload(payload)
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(encrypted, qrcode.Medium, 256)
}

// EncryptPayload seals the payload with AES-GCM and returns URL-safe base64.
func (q *QRGenerator) EncryptPayload(payload models.TicketQRPayload) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	gcm, err := q.aead()
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	sealed := gcm.Seal(nonce, nonce, data, nil)
	return base64.URLEncoding.EncodeToString(sealed), nil
}

// DecryptQRData reverses EncryptPayload, rejecting tampered or foreign codes.
func (q *QRGenerator) DecryptQRData(encoded string) (*models.TicketQRPayload, error) {
	sealed, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQRData, err)
	}
	gcm, err := q.aead()
	if err != nil {
		return nil, err
	}
	if len(sealed) < gcm.NonceSize() {
		return nil, fmt.Errorf("%w: too short", ErrInvalidQRData)
	}
	nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	data, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQRData, err)
	}
	var payload models.TicketQRPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQRData, err)
	}
	return &payload, nil
}

func (q *QRGenerator) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(q.secret)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
