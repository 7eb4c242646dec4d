package service

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
	"net/url"
	"strings"
)

// Sign computes the hex HMAC-SHA1 of a canonical string under a secret.
// Clients run the same computation to produce the sig parameter
func Sign(secret, canonical string) string {
	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write([]byte(canonical))
	return hex.EncodeToString(mac.Sum(nil))
}

// verify compares a caller signature against the expectation in constant
// time so signature probing leaks nothing through timing
func verify(secret, canonical, sig string) bool {
	expected := Sign(secret, canonical)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(strings.ToLower(sig))) == 1
}

// Canonical strings: each endpoint has a fixed ordered parameter set and
// the URL-encoded values concatenate into the string that gets signed.
// These format choices are wire compatible with existing clients, do not
// reorder them

// CanonicalList covers the list and reindex endpoints
func CanonicalList(pub string) string {
	return "pub=" + encode(pub)
}

// CanonicalDelete covers repository deletion
func CanonicalDelete(pub, reponame string) string {
	return "pub=" + encode(pub) + "&reponame=" + encode(reponame)
}

// CanonicalAdd covers repository creation
func CanonicalAdd(pub, reponame, repourl, repotype, repousername, repopassword, reposource, repobranch string) string {
	var b strings.Builder
	b.WriteString("pub=" + encode(pub))
	b.WriteString("&reponame=" + encode(reponame))
	b.WriteString("&repourl=" + encode(repourl))
	b.WriteString("&repotype=" + encode(repotype))
	b.WriteString("&repousername=" + encode(repousername))
	b.WriteString("&repopassword=" + encode(repopassword))
	b.WriteString("&reposource=" + encode(reposource))
	b.WriteString("&repobranch=" + encode(repobranch))
	return b.String()
}

func encode(s string) string { return url.QueryEscape(s) }
