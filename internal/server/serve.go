package restapi

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pautahq/pauta/internal/core"
	"github.com/pautahq/pauta/internal/imagecache"
	debuglog "github.com/pautahq/pauta/internal/log"
	"github.com/pautahq/pauta/internal/plugins/db/supadb"
)

// Options are the dependencies of the HTTP API. Images and Supabase are
// optional; their routes are only mounted when set.
type Options struct {
	Router   *core.Router
	Images   *imagecache.Cache
	Supabase *supadb.Client
	APIKey   string
}

// NewEngine builds the gin engine with every handler registered.
func NewEngine(opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	if opts.APIKey != "" {
		r.Use(APIKeyMiddleware(opts.APIKey))
	}

	router := opts.Router
	if router == nil {
		router = core.NewRouter(nil)
	}
	NewFormatsHandler(r)
	NewIntentHandler(r, router)
	NewSessionsHandler(r, router)
	if opts.Images != nil {
		NewImagesHandler(r, opts.Images)
	}
	NewSupabaseHandler(r, opts.Supabase)
	return r
}

// Serve starts the HTTP API on address and blocks.
func Serve(address string, opts Options) error {
	r := NewEngine(opts)
	debuglog.Log("Listening on %s\n", address)
	return r.Run(address)
}

// APIKeyMiddleware rejects requests without the expected X-API-Key header.
func APIKeyMiddleware(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		given := c.GetHeader("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(given), []byte(apiKey)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing API key"})
			return
		}
		c.Next()
	}
}

func abortWithError(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
