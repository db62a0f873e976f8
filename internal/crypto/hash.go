package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Stored digests come in two families. New passwords are hashed with
// Argon2id and stored as "$argon2id$v=19$m=<KiB>,t=<passes>,p=<lanes>$<salt>$<key>".
// Accounts imported from the previous deployment still carry bcrypt
// digests ("$2a$", "$2b$" or "$2y$"); those verify as usual and are
// replaced on the next successful login.

var errMalformedDigest = errors.New("malformed argon2id digest")

// argonParams is the cost of one Argon2id derivation.
type argonParams struct {
	memoryKiB uint32
	passes    uint32
	lanes     uint8
	keyLen    uint32
}

// currentParams is what HashPassword uses today. A stored digest with any
// other cost is reported by NeedsRehash.
var currentParams = argonParams{memoryKiB: 64 * 1024, passes: 3, lanes: 2, keyLen: 32}

const saltLen = 16

// maxMemoryKiB caps the memory cost read back from a digest so a tampered
// row cannot make a login allocate gigabytes.
const maxMemoryKiB = 1024 * 1024

var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// HashPassword derives a fresh Argon2id digest for a user's password.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	p := currentParams
	key := argon2.IDKey([]byte(password), salt, p.passes, p.memoryKiB, p.lanes, p.keyLen)

	b64 := base64.RawStdEncoding.EncodeToString
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.memoryKiB, p.passes, p.lanes, b64(salt), b64(key)), nil
}

// VerifyPassword checks a login attempt against a stored digest of either
// family. A digest that cannot be parsed never matches.
func VerifyPassword(password, digest string) bool {
	if isLegacyDigest(digest) {
		return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
	}

	p, salt, key, err := parseArgonDigest(digest)
	if err != nil {
		return false
	}

	candidate := argon2.IDKey([]byte(password), salt, p.passes, p.memoryKiB, p.lanes, p.keyLen)
	return subtle.ConstantTimeCompare(key, candidate) == 1
}

// NeedsRehash is true for bcrypt digests and for Argon2id digests made with
// an older cost, i.e. anything the login flow should upgrade.
func NeedsRehash(digest string) bool {
	if isLegacyDigest(digest) {
		return true
	}
	p, _, _, err := parseArgonDigest(digest)
	return err == nil && p != currentParams
}

func isLegacyDigest(digest string) bool {
	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(digest, prefix) {
			return true
		}
	}
	return false
}

func parseArgonDigest(digest string) (argonParams, []byte, []byte, error) {
	var p argonParams

	fields := strings.Split(digest, "$")
	if len(fields) != 6 || fields[0] != "" || fields[1] != "argon2id" {
		return p, nil, nil, errMalformedDigest
	}

	var version int
	if _, err := fmt.Sscanf(fields[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, nil, nil, errMalformedDigest
	}

	if _, err := fmt.Sscanf(fields[3], "m=%d,t=%d,p=%d", &p.memoryKiB, &p.passes, &p.lanes); err != nil {
		return p, nil, nil, errMalformedDigest
	}
	if p.passes == 0 || p.lanes == 0 || p.memoryKiB > maxMemoryKiB {
		return p, nil, nil, errMalformedDigest
	}

	salt, err := base64.RawStdEncoding.DecodeString(fields[4])
	if err != nil {
		return p, nil, nil, errMalformedDigest
	}
	key, err := base64.RawStdEncoding.DecodeString(fields[5])
	if err != nil || len(key) == 0 {
		return p, nil, nil, errMalformedDigest
	}
	p.keyLen = uint32(len(key))

	return p, salt, key, nil
}
