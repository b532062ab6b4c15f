package handler

import (
	"encoding/xml"
	"fmt"
	"go-recruit-app/internal/service"
	"net/http"
)

// SeoHandler holds dependencies for SEO-related handlers.
type SeoHandler struct {
	jobService  service.JobServicer
	postService service.PostServicer
	baseURL     string
}

// NewSeoHandler creates a new SeoHandler. baseURL is the externally visible
// origin without a trailing slash.
func NewSeoHandler(js service.JobServicer, ps service.PostServicer, baseURL string) *SeoHandler {
	return &SeoHandler{jobService: js, postService: ps, baseURL: baseURL}
}

// robotsHandler serves a static robots.txt file.
func (h *SeoHandler) robotsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "User-agent: *")
	fmt.Fprintln(w, "Allow: /")
	fmt.Fprintln(w, "Disallow: /admin/")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Sitemap: "+h.baseURL+"/sitemap.xml")
}

const sitemapDateFormat = "2006-01-02"

// staticRoutes are the fixed public pages included in the sitemap.
var staticRoutes = []string{
	"/", "/about", "/specialisms", "/jobs", "/employers", "/candidates", "/blog",
}

type sitemapURL struct {
	XMLName xml.Name `xml:"url"`
	Loc     string   `xml:"loc"`
	LastMod string   `xml:"lastmod,omitempty"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// sitemapHandler generates a sitemap from the static route list plus every
// active job and published post.
func (h *SeoHandler) sitemapHandler(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobService.ActiveJobs(r.Context())
	if err != nil {
		http.Error(w, "Failed to retrieve jobs for sitemap", http.StatusInternalServerError)
		return
	}
	posts, err := h.postService.PublishedPosts(r.Context())
	if err != nil {
		http.Error(w, "Failed to retrieve posts for sitemap", http.StatusInternalServerError)
		return
	}

	sitemap := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, route := range staticRoutes {
		sitemap.URLs = append(sitemap.URLs, sitemapURL{Loc: h.baseURL + route})
	}
	for _, job := range jobs {
		sitemap.URLs = append(sitemap.URLs, sitemapURL{
			Loc:     fmt.Sprintf("%s/jobs/%d", h.baseURL, job.ID),
			LastMod: job.UpdatedAt.Format(sitemapDateFormat),
		})
	}
	for _, post := range posts {
		sitemap.URLs = append(sitemap.URLs, sitemapURL{
			Loc:     h.baseURL + "/blog/" + post.Slug,
			LastMod: post.UpdatedAt.Format(sitemapDateFormat),
		})
	}

	w.Header().Set("Content-Type", "application/xml")
	w.Write([]byte(xml.Header))
	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(sitemap); err != nil {
		http.Error(w, "Failed to generate sitemap XML", http.StatusInternalServerError)
		return
	}
}
