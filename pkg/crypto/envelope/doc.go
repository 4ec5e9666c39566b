// Package envelope wraps a payload in a password-derived AES-256-CBC
// envelope.
//
// Layout of a sealed envelope:
//
//	salt (16) || iv (16) || ciphertext (multiple of 16)
//
// The key is derived with PBKDF2-HMAC-SHA1 over 100,000 iterations and the
// plaintext is PKCS#7 padded. The envelope carries no MAC: Open detects a
// wrong password only when the recovered padding byte is structurally
// invalid. Otherwise it returns garbage without error. Adding
// authentication changes the layout and needs a new format version.
package envelope
