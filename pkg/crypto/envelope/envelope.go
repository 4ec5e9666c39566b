package envelope

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha1"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the length of the key derivation salt.
	SaltSize = 16

	// IVSize is the length of the CBC initialization vector.
	IVSize = aes.BlockSize

	// KeySize is the derived key length (AES-256).
	KeySize = 32

	// Iterations is the PBKDF2 iteration count.
	Iterations = 100_000

	// HeaderSize is the number of bytes before the ciphertext.
	HeaderSize = SaltSize + IVSize
)

// Envelope errors.
var (
	// ErrDecryptionFailed is returned when the envelope cannot be opened:
	// it is malformed, or the recovered padding is invalid.
	ErrDecryptionFailed = errors.New("envelope: decryption failed - wrong password or corrupted data")
)

// Overhead returns the sealed size of a payload of n bytes.
func Overhead(n int) int {
	return HeaderSize + (n/aes.BlockSize+1)*aes.BlockSize
}

// DeriveKey derives the AES key for password and salt.
func DeriveKey(password, salt []byte) []byte {
	return pbkdf2.Key(password, salt, Iterations, KeySize, sha1.New)
}

// ZeroKey overwrites key material in place.
func ZeroKey(key []byte) {
	clear(key)
}

// deriveKey is replaced in tests to observe the key slice.
var deriveKey = DeriveKey

// Seal encrypts payload under password with a fresh salt and IV.
func Seal(payload, password []byte) ([]byte, error) {
	return seal(rand.Reader, payload, password)
}

func seal(random io.Reader, payload, password []byte) ([]byte, error) {
	out := make([]byte, HeaderSize, Overhead(len(payload)))
	if _, err := io.ReadFull(random, out[:HeaderSize]); err != nil {
		return nil, fmt.Errorf("envelope: read random: %w", err)
	}
	salt, iv := out[:SaltSize], out[SaltSize:HeaderSize]

	key := deriveKey(password, salt)
	defer ZeroKey(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	padded := pad(payload)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return append(out, ciphertext...), nil
}

// Open decrypts a sealed envelope with password.
func Open(sealed, password []byte) ([]byte, error) {
	if len(sealed) < HeaderSize+aes.BlockSize {
		return nil, fmt.Errorf("%w: envelope too short (%d bytes)", ErrDecryptionFailed, len(sealed))
	}
	salt := sealed[:SaltSize]
	iv := sealed[SaltSize:HeaderSize]
	ciphertext := sealed[HeaderSize:]
	if len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext is not a whole number of blocks", ErrDecryptionFailed)
	}

	key := deriveKey(password, salt)
	defer ZeroKey(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	return unpad(plaintext)
}

// pad applies PKCS#7 padding. A full block is added when len(p) is already
// a multiple of the block size.
func pad(p []byte) []byte {
	n := aes.BlockSize - len(p)%aes.BlockSize
	out := make([]byte, len(p), len(p)+n)
	copy(out, p)
	for i := 0; i < n; i++ {
		out = append(out, byte(n))
	}
	return out
}

// unpad strips PKCS#7 padding using only the final byte.
func unpad(p []byte) ([]byte, error) {
	if len(p) == 0 {
		return nil, ErrDecryptionFailed
	}
	n := int(p[len(p)-1])
	if n == 0 || n > len(p) {
		return nil, fmt.Errorf("%w: invalid padding length %d", ErrDecryptionFailed, n)
	}
	return p[:len(p)-n], nil
}
