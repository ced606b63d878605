// internal/adapters/googlemaps/staticmap.go
package googlemaps

import (
	"fmt"
	"net/url"
	"strings"
)

// StaticMapURL builds a Maps Static API URL. No network call happens here;
// the browser (or the PDF QR code) fetches the image.
func (c *Client) StaticMapURL(center string, zoom int, size string, markers []string) string {
	if !c.Available() {
		return ""
	}
	if zoom <= 0 {
		zoom = 13
	}
	if size == "" {
		size = "600x400"
	}

	params := []string{
		"center=" + url.QueryEscape(center),
		fmt.Sprintf("zoom=%d", zoom),
		"size=" + size,
		"key=" + c.config.APIKey,
	}
	for _, m := range markers {
		params = append(params, "markers="+url.QueryEscape(m))
	}

	return c.config.StaticMapBaseURL + "?" + strings.Join(params, "&")
}
