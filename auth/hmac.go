package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sinbum/korea-public-data-be-sub000/transport"
)

// ErrEmptySecret is returned when an HMAC strategy is applied with no
// shared secret. This is a configuration error and must not be retried.
var ErrEmptySecret = errors.New("auth: hmac secret is empty")

const hmacVersion = "1"

// HMAC returns a strategy that signs each request with HMAC-SHA256.
//
// It appends accessKey, timestamp, and version query parameters, builds
// the canonical string "METHOD\nURL\nsorted-query-string", and appends the
// hex signature as the signature parameter.
func HMAC(accessKey, secret string) Strategy {
	return &hmacStrategy{
		accessKey: accessKey,
		secret:    secret,
		now:       time.Now,
	}
}

type hmacStrategy struct {
	accessKey string
	secret    string
	now       func() time.Time
}

func (s *hmacStrategy) Apply(req transport.Request) (transport.Request, error) {
	if s.secret == "" {
		return transport.Request{}, ErrEmptySecret
	}

	out := req.Clone()
	out.SetQuery("accessKey", s.accessKey)
	out.SetQuery("timestamp", strconv.FormatInt(s.now().Unix(), 10))
	out.SetQuery("version", hmacVersion)

	canonical := canonicalString(out)
	mac := hmac.New(sha256.New, []byte(s.secret))
	mac.Write([]byte(canonical))
	out.SetQuery("signature", hex.EncodeToString(mac.Sum(nil)))

	return out, nil
}

// canonicalString builds METHOD\nURL\nsorted-query-string over the request
// as it will be sent, signature excluded.
func canonicalString(req transport.Request) string {
	keys := make([]string, 0, len(req.Query))
	for k := range req.Query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, url.QueryEscape(k)+"="+url.QueryEscape(req.Query[k]))
	}

	return req.Method + "\n" + req.Path + "\n" + strings.Join(pairs, "&")
}
