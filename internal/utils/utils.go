package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var accountNumberPattern = regexp.MustCompile(`^01\d{6}$`)

// GenerateID generates a unique ID with the given prefix, e.g. "usr-a8Bc91xQ2p".
func GenerateID(prefix string) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	const length = 10

	result := make([]byte, length)
	for i := range result {
		num, _ := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		result[i] = charset[num.Int64()]
	}

	return fmt.Sprintf("%s-%s", prefix, string(result))
}

// GenerateNumericID generates an ID with the given prefix and a numeric
// suffix, e.g. "tan-839201746".
func GenerateNumericID(prefix string, digits int) string {
	result := make([]byte, digits)
	for i := range result {
		num, _ := rand.Int(rand.Reader, big.NewInt(10))
		result[i] = byte('0' + num.Int64())
	}
	return fmt.Sprintf("%s-%s", prefix, string(result))
}

// GenerateAccountNumber generates an 8-digit account number starting with 01.
// Callers must verify the number is unused before persisting an account with it.
func GenerateAccountNumber() string {
	num, _ := rand.Int(rand.Reader, big.NewInt(1000000))
	return fmt.Sprintf("01%06d", num.Int64())
}

// HashPassword hashes a password using bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword checks if a password matches a hash.
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ValidateAccountNumber validates the account number format: "01" + 6 digits.
func ValidateAccountNumber(accountNumber string) bool {
	return accountNumberPattern.MatchString(accountNumber)
}

// ValidateUserID validates the user ID format.
func ValidateUserID(userID string) bool {
	return strings.HasPrefix(userID, "usr-") && len(userID) > len("usr-")
}

// ValidateTransactionID validates the transaction ID format.
func ValidateTransactionID(transactionID string) bool {
	return strings.HasPrefix(transactionID, "tan-") && len(transactionID) > len("tan-")
}

// NormalizeEmail trims surrounding whitespace and lowercases an email address.
// All email storage and lookups go through this.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
