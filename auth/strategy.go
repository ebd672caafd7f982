// Package auth injects credentials into outgoing request descriptions.
//
// A Strategy is pure: it performs no I/O, keeps no per-call state, and
// returns a modified copy of the request instead of mutating it. The
// concrete strategy is chosen at client construction time.
package auth

import (
	"encoding/base64"

	"github.com/sinbum/korea-public-data-be-sub000/transport"
)

// Strategy applies credentials to a request description.
type Strategy interface {
	Apply(req transport.Request) (transport.Request, error)
}

// None returns a strategy that leaves the request untouched.
func None() Strategy {
	return noneStrategy{}
}

type noneStrategy struct{}

func (noneStrategy) Apply(req transport.Request) (transport.Request, error) {
	return req, nil
}

// StaticKey returns a strategy that appends a fixed credential as the
// named query parameter. This is how the public-data portal's serviceKey
// is sent.
func StaticKey(param, key string) Strategy {
	if param == "" {
		param = "serviceKey"
	}
	return staticKeyStrategy{param: param, key: key}
}

type staticKeyStrategy struct {
	param string
	key   string
}

func (s staticKeyStrategy) Apply(req transport.Request) (transport.Request, error) {
	out := req.Clone()
	out.SetQuery(s.param, s.key)
	return out, nil
}

// Bearer returns a strategy that sets an Authorization: Bearer header.
func Bearer(token string) Strategy {
	return bearerStrategy{token: token}
}

type bearerStrategy struct {
	token string
}

func (s bearerStrategy) Apply(req transport.Request) (transport.Request, error) {
	out := req.Clone()
	out.SetHeader("Authorization", "Bearer "+s.token)
	return out, nil
}

// Basic returns a strategy that sets an Authorization: Basic header with
// the base64-encoded user:pass pair.
func Basic(user, pass string) Strategy {
	return basicStrategy{user: user, pass: pass}
}

type basicStrategy struct {
	user string
	pass string
}

func (s basicStrategy) Apply(req transport.Request) (transport.Request, error) {
	out := req.Clone()
	cred := base64.StdEncoding.EncodeToString([]byte(s.user + ":" + s.pass))
	out.SetHeader("Authorization", "Basic "+cred)
	return out, nil
}

// Header returns a strategy that sets a single fixed header.
func Header(name, value string) Strategy {
	return headerStrategy{name: name, value: value}
}

type headerStrategy struct {
	name  string
	value string
}

func (s headerStrategy) Apply(req transport.Request) (transport.Request, error) {
	out := req.Clone()
	out.SetHeader(s.name, s.value)
	return out, nil
}
