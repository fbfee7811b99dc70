// Package markup versions asset references in HTML documents.
//
// Only elements that opt in are touched: an img or script with a src, or a
// link with an href, carrying an append-version attribute. Everything else
// is copied to the output byte for byte.
package markup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"go.trai.ch/bust/internal/core/domain"
	"go.trai.ch/bust/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// MarkerAttr opts an element into versioning. It is removed from the output.
const MarkerAttr = "append-version"

var _ ports.MarkupRewriter = (*Rewriter)(nil)

// urlAttrs maps the elements that can be versioned to the attribute holding their URL.
var urlAttrs = map[atom.Atom]string{
	atom.Img:    "src",
	atom.Script: "src",
	atom.Link:   "href",
}

// Rewriter implements ports.MarkupRewriter on top of the x/net/html tokenizer.
type Rewriter struct {
	versioner ports.AssetVersioner
	logger    ports.Logger
}

// NewRewriter creates a Rewriter resolving URLs through versioner.
func NewRewriter(versioner ports.AssetVersioner, logger ports.Logger) *Rewriter {
	return &Rewriter{versioner: versioner, logger: logger}
}

// Rewrite copies src to dst, versioning every opted-in asset reference.
// URLs that cannot be versioned because they are malformed are kept as written
// and reported as warnings. Any other failure aborts the rewrite.
func (r *Rewriter) Rewrite(ctx context.Context, dst io.Writer, src io.Reader, pathBase string) error {
	z := html.NewTokenizer(src)
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				return nil
			}
			return zerr.Wrap(z.Err(), "failed to tokenize document")
		}

		out := z.Raw()
		if tt == html.StartTagToken || tt == html.SelfClosingTagToken {
			raw := slices.Clone(out)
			tag, changed, err := r.rewriteTag(ctx, z.Token(), pathBase)
			if err != nil {
				return err
			}
			out = raw
			if changed {
				out = []byte(tag)
			}
		}

		if _, err := dst.Write(out); err != nil {
			return zerr.Wrap(err, "failed to write document")
		}
	}
}

// rewriteTag returns the rendered tag and true when tok carries the marker.
func (r *Rewriter) rewriteTag(ctx context.Context, tok html.Token, pathBase string) (string, bool, error) {
	urlAttr, ok := urlAttrs[tok.DataAtom]
	if !ok {
		return "", false, nil
	}
	marker := slices.IndexFunc(tok.Attr, func(a html.Attribute) bool {
		return a.Namespace == "" && a.Key == MarkerAttr
	})
	if marker < 0 {
		return "", false, nil
	}
	enabled := !strings.EqualFold(strings.TrimSpace(tok.Attr[marker].Val), "false")
	tok.Attr = slices.Delete(tok.Attr, marker, marker+1)

	if enabled {
		for i, attr := range tok.Attr {
			if attr.Namespace != "" || attr.Key != urlAttr || strings.TrimSpace(attr.Val) == "" {
				continue
			}
			versioned, err := r.versioner.Resolve(ctx, attr.Val, pathBase)
			if err != nil {
				if !errors.Is(err, domain.ErrInvalidPath) {
					return "", false, zerr.With(err, "element", tok.Data)
				}
				r.logger.Warn(fmt.Sprintf("keeping %s=%q unversioned: %v", urlAttr, attr.Val, err))
				break
			}
			tok.Attr[i].Val = versioned
			break
		}
	}
	return tok.String(), true, nil
}
