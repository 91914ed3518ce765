package server

import (
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
)

// crawlAPIPrefix is the path the browser uses to reach the crawl API through this server.
const crawlAPIPrefix = "/crawl-api/"

// newCrawlProxy forwards /crawl-api/* to upstream with the prefix stripped.
// apiKey is sent as a bearer token when the client did not send one. When
// guarded, the client's Authorization header carries a crawl access token
// for this server, so it is replaced rather than forwarded.
func newCrawlProxy(upstream *url.URL, apiKey string, guarded bool) http.Handler {
	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.Out.URL.Path = "/" + strings.TrimPrefix(pr.In.URL.Path, crawlAPIPrefix)
			pr.Out.URL.RawPath = ""
			pr.SetURL(upstream)

			if guarded {
				pr.Out.Header.Del("Authorization")
				query := pr.Out.URL.Query()
				if query.Has("access_token") {
					query.Del("access_token")
					pr.Out.URL.RawQuery = query.Encode()
				}
			}
			if apiKey != "" && pr.Out.Header.Get("Authorization") == "" {
				pr.Out.Header.Set("Authorization", "Bearer "+apiKey)
			}
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			log.Printf("[PROXY] %s %s failed: %v", r.Method, r.URL.Path, err)
			http.Error(w, "crawl API unreachable", http.StatusBadGateway)
		},
	}
}
