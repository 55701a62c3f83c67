// Package gallery models the image gallery page.
//
// Images come from the site config. Missing fields are derived the same way
// for every source: the filename from the title, the alt text from the title
// or the filename, the local path under images/travel. A gallery configured
// without images shows a fixed set of sample images.
package gallery

import (
	"regexp"
	"strconv"
	"strings"
)

// LocalDir is the directory local image paths are resolved under.
const LocalDir = "images/travel"

// DefaultTitle is the gallery page title when none is configured.
const DefaultTitle = "Travel Gallery"

// Image is one gallery entry.
type Image struct {
	ID          string
	Filename    string
	Title       string
	Description string
	Category    string
	URL         string
	LocalPath   string
	Alt         string
}

// HiResURL returns the modal variant of the image URL.
func (img Image) HiResURL() string {
	return HiResURL(img.URL)
}

var (
	whitespace = regexp.MustCompile(`\s+`)
	imageExt   = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif)$`)
	separators = regexp.MustCompile(`[-_]`)
	widthParam = regexp.MustCompile(`w=\d+`)
	qualParam  = regexp.MustCompile(`&q=\d+`)
)

// Normalize fills derived fields of img. Fields already set are kept.
func Normalize(img Image) Image {
	if img.Filename == "" && img.Title != "" {
		img.Filename = whitespace.ReplaceAllString(strings.ToLower(img.Title), "-") + ".jpg"
	}
	if img.Alt == "" {
		img.Alt = img.Title
	}
	if img.Alt == "" {
		img.Alt = separators.ReplaceAllString(imageExt.ReplaceAllString(img.Filename, ""), " ")
	}
	if img.LocalPath == "" && img.Filename != "" {
		img.LocalPath = LocalDir + "/" + img.Filename
	}
	if img.URL == "" {
		img.URL = img.LocalPath
	}
	return img
}

// HiResURL rewrites the first width parameter to w=1200 and the first
// quality parameter to q=90. Other URLs are returned unchanged.
func HiResURL(url string) string {
	url = replaceFirst(widthParam, url, "w=1200")
	return replaceFirst(qualParam, url, "&q=90")
}

func replaceFirst(re *regexp.Regexp, s, repl string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + repl + s[loc[1]:]
}

// Categories returns the distinct non-empty categories in first-seen order.
func Categories(images []Image) []string {
	seen := make(map[string]bool)
	var out []string
	for _, img := range images {
		if img.Category == "" || seen[img.Category] {
			continue
		}
		seen[img.Category] = true
		out = append(out, img.Category)
	}
	return out
}

// Gallery is the view model of the gallery page.
type Gallery struct {
	Title      string
	Images     []Image
	Categories []string
	Sample     bool
}

// New normalizes images and assigns each a document-unique ID.
// With no images the gallery falls back to SampleImages.
func New(title string, images []Image) *Gallery {
	if title == "" {
		title = DefaultTitle
	}
	g := &Gallery{Title: title}
	if len(images) == 0 {
		images = SampleImages()
		g.Sample = true
	}

	g.Images = make([]Image, len(images))
	for i, img := range images {
		img = Normalize(img)
		img.ID = "image-" + strconv.Itoa(i+1)
		g.Images[i] = img
	}
	g.Categories = Categories(g.Images)
	return g
}
