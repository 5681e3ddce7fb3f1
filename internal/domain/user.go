package domain

import (
	"crypto/sha256"
	"encoding/hex"
)

type User struct {
	Base

	Name     string  `gorm:"not null" json:"name"`
	Email    string  `gorm:"uniqueIndex;not null" json:"email"`
	Password []byte  `gorm:"not null" json:"-"`
	Code     *string `gorm:"size:5" json:"-"`
	IsAdmin  bool    `gorm:"default:false" json:"is_admin"`
}

func (User) TableName() string { return "users" }

// TokenRecord holds the single live token pair for a subject (the user's
// external reference). Saving a new pair overwrites the previous one, which
// is what invalidates an older session: the gate compares the presented
// token's digest against the access slot stored here.
type TokenRecord struct {
	Base

	Subject          string `gorm:"size:32;uniqueIndex;not null" json:"subject"`
	AccessTokenHash  string `gorm:"size:64;not null" json:"-"`
	RefreshTokenHash string `gorm:"size:64;not null" json:"-"`
}

func (TokenRecord) TableName() string { return "tokens" }

// TokenDigest fingerprints a signed token for storage and comparison.
// SHA-256 keeps byte-equality semantics for inputs longer than bcrypt's
// 72-byte input limit.
func TokenDigest(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func (t *TokenRecord) MatchesAccess(raw string) bool {
	return t.AccessTokenHash == TokenDigest(raw)
}

func (t *TokenRecord) MatchesRefresh(raw string) bool {
	return t.RefreshTokenHash == TokenDigest(raw)
}
