package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the work factor the system has always used; raising it
// invalidates nothing but slows logins.
const bcryptCost = 10

// HashPassword returns the bcrypt hash of a plaintext password. The hash is
// salted, so hashing the same input twice yields different values.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches the stored hash. It never
// returns an error; any failure is treated as a mismatch.
func CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
