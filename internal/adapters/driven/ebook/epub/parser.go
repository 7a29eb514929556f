// Package epub reads EPUB containers into raw, unsegmented books.
//
// Chapters come from the EPUB 2 table of contents (the NCX): the spine
// is walked in reading order, a spine document referenced by a navPoint
// opens a new chapter, and documents without a navPoint join the
// chapter before them. EPUB 3 books work as long as they ship the usual
// compatibility NCX.
package epub

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hanci-tools/hanci-cli/internal/core/domain"
	"github.com/hanci-tools/hanci-cli/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.EbookParser = (*Parser)(nil)

const (
	containerPath    = "META-INF/container.xml"
	packageMediaType = "application/oebps-package+xml"
	ncxMediaType     = "application/x-dtbncx+xml"
)

// Parser handles EPUB files.
type Parser struct{}

// New creates a new EPUB parser.
func New() *Parser {
	return &Parser{}
}

// Parse reads the EPUB at filename into its title, author and chapter
// texts.
func (p *Parser) Parse(_ context.Context, filename string) (*domain.RawBook, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading ebook: %w", err)
	}

	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: not a zip container: %v", domain.ErrMalformedBook, err)
	}

	files := make(map[string]*zip.File, len(archive.File))
	for _, f := range archive.File {
		files[path.Clean(f.Name)] = f
	}

	opfPath, err := rootfilePath(files)
	if err != nil {
		return nil, err
	}

	pkg, err := readPackage(files, opfPath)
	if err != nil {
		return nil, err
	}
	if len(pkg.Spine.Itemrefs) == 0 {
		return nil, fmt.Errorf("%w: empty spine", domain.ErrMalformedBook)
	}

	ncx, ok := ncxPath(pkg, opfPath)
	if !ok {
		return nil, fmt.Errorf("%w: no ncx table of contents", domain.ErrMalformedBook)
	}
	titles, err := chapterTitles(files, ncx)
	if err != nil {
		return nil, err
	}

	itemsByID := make(map[string]manifestItem, len(pkg.Manifest.Items))
	for _, item := range pkg.Manifest.Items {
		itemsByID[item.ID] = item
	}

	var chapters []domain.RawChapter
	for _, ref := range pkg.Spine.Itemrefs {
		item, ok := itemsByID[ref.IDRef]
		if !ok {
			continue
		}
		docPath := resolveRef(opfPath, item.Href)
		if _, ok := files[docPath]; !ok {
			// Broken spine entries are skipped rather than fatal.
			continue
		}
		doc, err := readFile(files, docPath)
		if err != nil {
			return nil, err
		}
		text := stripMarkup(string(doc))

		if title, ok := titles[docPath]; ok {
			chapters = append(chapters, domain.RawChapter{Title: title, Text: text})
			continue
		}
		if len(chapters) == 0 {
			// Content before the first navPoint becomes an untitled
			// preface chapter.
			if text != "" {
				chapters = append(chapters, domain.RawChapter{Text: text})
			}
			continue
		}
		appendText(&chapters[len(chapters)-1], text)
	}

	title := firstNonEmpty(pkg.Metadata.Titles)
	if title == "" {
		title = titleFromFilename(filename)
	}

	return &domain.RawBook{
		Title:    title,
		Author:   firstNonEmpty(pkg.Metadata.Creators),
		Chapters: chapters,
	}, nil
}

// containerXML represents META-INF/container.xml.
type containerXML struct {
	Rootfiles struct {
		Rootfiles []rootfileXML `xml:"rootfile"`
	} `xml:"rootfiles"`
}

type rootfileXML struct {
	FullPath  string `xml:"full-path,attr"`
	MediaType string `xml:"media-type,attr"`
}

// rootfilePath locates the OPF package document inside the archive.
func rootfilePath(files map[string]*zip.File) (string, error) {
	data, err := readFile(files, containerPath)
	if err != nil {
		return "", err
	}

	var container containerXML
	if err := xml.Unmarshal(data, &container); err != nil {
		return "", fmt.Errorf("%w: parsing container.xml: %v", domain.ErrMalformedBook, err)
	}

	for _, rf := range container.Rootfiles.Rootfiles {
		if rf.FullPath == "" {
			continue
		}
		if rf.MediaType == "" || rf.MediaType == packageMediaType {
			return path.Clean(rf.FullPath), nil
		}
	}
	return "", fmt.Errorf("%w: container.xml names no package rootfile", domain.ErrMalformedBook)
}

// packageXML represents the OPF package document.
type packageXML struct {
	Metadata struct {
		Titles   []string `xml:"title"`
		Creators []string `xml:"creator"`
	} `xml:"metadata"`
	Manifest struct {
		Items []manifestItem `xml:"item"`
	} `xml:"manifest"`
	Spine struct {
		Toc      string       `xml:"toc,attr"`
		Itemrefs []itemrefXML `xml:"itemref"`
	} `xml:"spine"`
}

type manifestItem struct {
	ID        string `xml:"id,attr"`
	Href      string `xml:"href,attr"`
	MediaType string `xml:"media-type,attr"`
}

type itemrefXML struct {
	IDRef string `xml:"idref,attr"`
}

func readPackage(files map[string]*zip.File, opfPath string) (*packageXML, error) {
	data, err := readFile(files, opfPath)
	if err != nil {
		return nil, err
	}

	var pkg packageXML
	if err := xml.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", domain.ErrMalformedBook, opfPath, err)
	}
	return &pkg, nil
}

// ncxPath locates the NCX document, preferring the spine's toc
// reference over a manifest media-type match.
func ncxPath(pkg *packageXML, opfPath string) (string, bool) {
	if pkg.Spine.Toc != "" {
		for _, item := range pkg.Manifest.Items {
			if item.ID == pkg.Spine.Toc {
				return resolveRef(opfPath, item.Href), true
			}
		}
	}
	for _, item := range pkg.Manifest.Items {
		if item.MediaType == ncxMediaType {
			return resolveRef(opfPath, item.Href), true
		}
	}
	return "", false
}

// ncxXML represents the NCX table of contents.
type ncxXML struct {
	NavMap struct {
		NavPoints []navPointXML `xml:"navPoint"`
	} `xml:"navMap"`
}

type navPointXML struct {
	NavLabel struct {
		Text string `xml:"text"`
	} `xml:"navLabel"`
	Content struct {
		Src string `xml:"src,attr"`
	} `xml:"content"`
	Children []navPointXML `xml:"navPoint"`
}

// chapterTitles maps each document referenced by the table of contents
// to its chapter title.
func chapterTitles(files map[string]*zip.File, ncx string) (map[string]string, error) {
	data, err := readFile(files, ncx)
	if err != nil {
		return nil, err
	}

	var toc ncxXML
	if err := xml.Unmarshal(data, &toc); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", domain.ErrMalformedBook, ncx, err)
	}

	titles := make(map[string]string)
	collectNavPoints(toc.NavMap.NavPoints, ncx, titles)
	return titles, nil
}

// collectNavPoints walks nested navPoints in document order. The first
// navPoint referencing a document names its chapter; later ones usually
// point at fragments inside it.
func collectNavPoints(points []navPointXML, ncx string, titles map[string]string) {
	for _, p := range points {
		if p.Content.Src != "" {
			src := resolveRef(ncx, p.Content.Src)
			if _, seen := titles[src]; !seen {
				titles[src] = strings.TrimSpace(p.NavLabel.Text)
			}
		}
		collectNavPoints(p.Children, ncx, titles)
	}
}

// readFile reads one archive member by its cleaned path.
func readFile(files map[string]*zip.File, name string) ([]byte, error) {
	f, ok := files[name]
	if !ok {
		return nil, fmt.Errorf("%w: missing %s", domain.ErrMalformedBook, name)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", domain.ErrMalformedBook, name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrMalformedBook, name, err)
	}
	return data, nil
}

// resolveRef resolves a manifest or navPoint reference against the
// directory of the file that declared it. References may carry URL
// escaping and fragments.
func resolveRef(base, ref string) string {
	if i := strings.IndexByte(ref, '#'); i >= 0 {
		ref = ref[:i]
	}
	if unescaped, err := url.PathUnescape(ref); err == nil {
		ref = unescaped
	}
	return path.Join(path.Dir(base), ref)
}

// appendText merges a spine document that has no navPoint of its own
// into the chapter before it.
func appendText(ch *domain.RawChapter, text string) {
	if text == "" {
		return
	}
	if ch.Text == "" {
		ch.Text = text
		return
	}
	ch.Text += "\n" + text
}

func firstNonEmpty(values []string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// titleFromFilename falls back to the file name when the package
// metadata carries no title.
func titleFromFilename(filename string) string {
	name := filepath.Base(filename)
	if ext := filepath.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	name = strings.ReplaceAll(name, "_", " ")
	return strings.TrimSpace(name)
}

// Pre-compiled regular expressions for markup stripping.
var (
	headTag     = regexp.MustCompile(`(?is)<head[^>]*>.*?</head>`)
	scriptTag   = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag    = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	svgTag      = regexp.MustCompile(`(?is)<svg[^>]*>.*?</svg>`)
	xmlComments = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockTags   = regexp.MustCompile(`(?i)</?(p|div|br|hr|h[1-6]|li|tr|blockquote|pre|table|section|article)[^>]*>`)
	allTags     = regexp.MustCompile(`<[^>]+>`)
	multiSpaces = regexp.MustCompile(`[ \t]+`)
)

// stripMarkup reduces an XHTML chapter document to plain text. The
// head element goes first so document titles and style blocks never
// reach the chapter body.
func stripMarkup(content string) string {
	content = headTag.ReplaceAllString(content, "")
	content = scriptTag.ReplaceAllString(content, "")
	content = styleTag.ReplaceAllString(content, "")
	content = svgTag.ReplaceAllString(content, "")
	content = xmlComments.ReplaceAllString(content, "")

	// Block boundaries become line breaks before the remaining tags go.
	content = blockTags.ReplaceAllString(content, "\n")
	content = allTags.ReplaceAllString(content, "")
	content = html.UnescapeString(content)
	content = multiSpaces.ReplaceAllString(content, " ")

	lines := strings.Split(content, "\n")
	var result []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}
