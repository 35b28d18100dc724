package git

import (
	"fmt"
	"strings"
)

// NormalizeRemoteURL reduces a remote URL to "host/owner/name" so that
// https, ssh and scp-style remotes of the same repo compare equal.
//
//	https://github.com/org/repo.git -> github.com/org/repo
//	git@github.com:org/repo.git     -> github.com/org/repo
//	ssh://git@github.com/org/repo   -> github.com/org/repo
func NormalizeRemoteURL(url string) (string, error) {
	s := strings.TrimSpace(url)
	if s == "" {
		return "", fmt.Errorf("empty remote URL")
	}

	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	} else if at := strings.Index(s, "@"); at >= 0 {
		// scp-style: user@host:owner/name
		s = strings.Replace(s[at+1:], ":", "/", 1)
	}

	// Drop userinfo left over from ssh://user@host/...
	if at := strings.Index(s, "@"); at >= 0 && at < strings.Index(s+"/", "/") {
		s = s[at+1:]
	}

	s = strings.TrimSuffix(strings.TrimSuffix(s, "/"), ".git")

	// Strip a port from the host segment
	host, rest, ok := strings.Cut(s, "/")
	if !ok || rest == "" {
		return "", fmt.Errorf("invalid remote URL %q: missing repository path", url)
	}
	if h, _, found := strings.Cut(host, ":"); found {
		host = h
	}

	return strings.ToLower(host) + "/" + rest, nil
}
