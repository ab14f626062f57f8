package telestream

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"sort"
	"strings"
	"time"
)

const (
	accessKeyParam = "access_key"
	timestampParam = "timestamp"
	signatureParam = "signature"
)

type signer struct {
	accessKey string
	secretKey string
	now       func() time.Time
}

// sign stamps the credentials and timestamp onto params and returns the
// signature computed over the request.
//
// The string to sign is METHOD\nhost\n/path\ncanonical-query, where the
// canonical query is every parameter except the signature, sorted by name and
// RFC 3986 escaped.
func (s signer) sign(method, host, path string, params *QueryParams) string {
	params.Add(accessKeyParam, s.accessKey)
	params.Add(timestampParam, s.now().UTC().Format(time.RFC3339))

	toSign := strings.Join([]string{
		strings.ToUpper(method),
		strings.ToLower(host),
		"/" + strings.TrimLeft(path, "/"),
		canonicalQuery(params),
	}, "\n")

	mac := hmac.New(sha256.New, []byte(s.secretKey))
	mac.Write([]byte(toSign))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func canonicalQuery(params *QueryParams) string {
	list := params.Params()
	sort.SliceStable(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	parts := make([]string, 0, len(list))
	for _, p := range list {
		if p.Name == signatureParam {
			continue
		}
		parts = append(parts, escape(p.Name)+"="+escape(p.Value))
	}
	return strings.Join(parts, "&")
}
