package domain

import (
	"database/sql"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gobuffalo/envy"
	"github.com/gofrs/uuid"
	"github.com/kelseyhightower/envconfig"
)

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Context keys
const (
	ContextKeyCurrentUser = "current_user"
	ContextKeyExtras      = "extras"
	ContextKeyTx          = "tx"
)

const (
	CurrencyFactor = 100
	DateFormat     = "2006-01-02"

	MaxFileSize = 1024 * 1024 * 10 // 10 Megabytes

	// PendingFileLifetime is how long a staged upload stays claimable
	PendingFileLifetime = time.Hour * 24

	DurationDay  = time.Duration(time.Hour * 24)
	DurationWeek = time.Duration(DurationDay * 7)
)

// Event kinds
const (
	EventApiClaimCreated      = "api:claim:created"
	EventApiClaimUpdated      = "api:claim:updated"
	EventApiClaimTransitioned = "api:claim:transitioned"
	EventApiClaimFileDeleted  = "api:claimfile:deleted"

	EventPayloadID = "id"
)

var AllowedFileUploadTypes = []string{
	"image/bmp",
	"image/gif",
	"image/jpeg",
	"image/png",
	"image/webp",
	"application/pdf",
}

// Env Holds the values of environment variables
var Env struct {
	GoEnv      string `ignored:"true"`
	ApiBaseURL string `required:"true" split_words:"true"`
	AppName    string `default:"ClaimWell" split_words:"true"`
	ServerPort int    `default:"3000" split_words:"true"`
	UIURL      string `default:"http://missing.ui.url"`

	AccessTokenLifetimeSeconds int `default:"1166400" split_words:"true"` // 13.5 days

	SessionSecret string `required:"true" split_words:"true"`
	SentryDSN     string `default:"" split_words:"true" envconfig:"SENTRY_DSN"`

	AwsRegion           string `split_words:"true"`
	AwsS3Endpoint       string `split_words:"true"`
	AwsS3DisableSSL     bool   `split_words:"true"`
	AwsS3Bucket         string `split_words:"true"`
	AwsS3URLLifeMinutes int    `default:"10" split_words:"true"`
	AwsAccessKeyID      string `split_words:"true"`
	AwsSecretAccessKey  string `split_words:"true"`

	EmailFromAddress string `required:"true" split_words:"true"`
	EmailService     string `default:"ses" split_words:"true"`
	SupportEmail     string `default:"" split_words:"true"`

	MaxFileDelete int `default:"10" split_words:"true"`

	ListenerDelayMilliseconds int `default:"10" split_words:"true"`
	ListenerMaxRetries        int `default:"10" split_words:"true"`
}

func init() {
	readEnv()
}

// readEnv loads environment data into `Env`
func readEnv() {
	if err := envconfig.Process("", &Env); err != nil {
		log.Fatal(errors.New("error loading env vars: " + err.Error()))
	}

	// Doing this separately to avoid needing two environment variables for the same thing
	Env.GoEnv = envy.Get("GO_ENV", EnvDevelopment)
}

// GetUUID creates a new, unique version 4 (random) UUID and returns it
// as a uuid.UUID. Errors are ignored.
func GetUUID() uuid.UUID {
	id, err := uuid.NewV4()
	if err != nil {
		log.Printf("error creating new uuid ... %v", err)
	}
	return id
}

// IsOtherThanNoRows returns false if the error is nil or is just reporting that there
//   were no rows in the result set for a sql query.
func IsOtherThanNoRows(err error) bool {
	if err == nil {
		return false
	}

	if strings.Contains(err.Error(), sql.ErrNoRows.Error()) {
		return false
	}

	return true
}

// IsStringInSlice iterates over a slice of strings, looking for the given
// string. If found, true is returned. Otherwise, false is returned.
func IsStringInSlice(needle string, haystack []string) bool {
	for _, hs := range haystack {
		if needle == hs {
			return true
		}
	}

	return false
}

func RandomString(n int, includeLetters string) string {
	rand.Seed(time.Now().UnixNano())
	if includeLetters == "" {
		includeLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	}
	letters := []rune(includeLetters)
	b := make([]rune, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))] // #nosec G404
	}
	return string(b)
}

// GetBearerTokenFromRequest obtains the token from an Authorization header beginning
// with "Bearer". If the header is missing or malformed, an empty string is returned.
func GetBearerTokenFromRequest(r *http.Request) string {
	authorizationHeader := r.Header.Get("Authorization")
	if authorizationHeader == "" {
		return ""
	}

	re := regexp.MustCompile(`^(?i)Bearer (.*)$`)
	matches := re.FindSubmatch([]byte(authorizationHeader))
	if len(matches) < 2 {
		return ""
	}

	return string(matches[1])
}

// RandomInsecureIntInRange is insecure because it only uses the math/rand package
//  and not the crypto/rand package
func RandomInsecureIntInRange(min, max int) int {
	if min >= max {
		panic("invalid parameters to RandomInsecureIntInRange: max of range must be greater than min.")
	}
	rand.Seed(time.Now().UnixNano())
	return rand.Intn(max-min+1) + min // #nosec G404
}
