package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword produces a salted bcrypt digest of the plaintext. This is
// the only path by which a secret may reach the store.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches the stored digest. A
// malformed digest fails closed and returns false.
func CheckPassword(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
