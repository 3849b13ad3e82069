// Package headhunter is a read-only client for the hh.ru vacancies API,
// used as an external job source.
package headhunter

import (
	"net/http"
	"strings"
	"time"

	"github.com/spigell/resume-matcher/internal/logger"
	"go.uber.org/zap"
)

const (
	apiURL    = "https://api.hh.ru"
	userAgent = "spigell/resume-matcher (spigelly@gmail.com)"
	// Max value for search per page.
	perPage = 100
)

type Options struct {
	APIURL    string
	UserAgent string
	// Token is optional; vacancy search is public.
	Token   string
	Timeout time.Duration
}

type Client struct {
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

func New(log *zap.Logger, opts Options) *Client {
	c := &Client{
		token:     strings.TrimSpace(opts.Token),
		APIURL:    strings.TrimRight(strings.TrimSpace(opts.APIURL), "/"),
		UserAgent: strings.TrimSpace(opts.UserAgent),
		HTTPClient: &http.Client{
			Timeout: opts.Timeout,
		},
		logger: logger.OrNop(log),
	}
	if c.APIURL == "" {
		c.APIURL = apiURL
	}
	if c.UserAgent == "" {
		c.UserAgent = userAgent
	}
	if c.HTTPClient.Timeout <= 0 {
		c.HTTPClient.Timeout = 10 * time.Second
	}
	return c
}
