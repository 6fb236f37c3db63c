package main

import (
	"github.com/fwojciec/sitecrawl"
	"github.com/fwojciec/sitecrawl/goquery"
	"github.com/fwojciec/sitecrawl/htmltomarkdown"
	"github.com/fwojciec/sitecrawl/readability"
	"github.com/fwojciec/sitecrawl/trafilatura"
	"github.com/fwojciec/sitecrawl/yaml"
)

// DefaultExtractorName names the extractor used when the configuration
// declares none.
const DefaultExtractorName = "title"

// defaultExtractor records each page's URL and title.
func defaultExtractor() yaml.Extractor {
	return yaml.Extractor{
		Name: DefaultExtractorName,
		Fields: []yaml.Field{
			{Name: "url", Kind: "url"},
			{Name: "title", Kind: "title"},
		},
	}
}

// buildExtractors turns the declared extractors into field sets.
func buildExtractors(file *yaml.File) ([]sitecrawl.Extractor, error) {
	decls := file.Extractors
	if len(decls) == 0 {
		decls = []yaml.Extractor{defaultExtractor()}
	}

	md := htmltomarkdown.NewConverter()
	extractors := make([]sitecrawl.Extractor, 0, len(decls))
	for _, decl := range decls {
		fields := make([]sitecrawl.Field, 0, len(decl.Fields))
		for _, fc := range decl.Fields {
			fn, err := fieldFunc(fc, md)
			if err != nil {
				return nil, sitecrawl.Errorf(sitecrawl.EINVALID, "extractor %q: %s", decl.Name, sitecrawl.ErrorMessage(err))
			}
			fields = append(fields, sitecrawl.NewField(fc.Name, fn))
		}
		ex, err := sitecrawl.NewFieldSet(decl.Name, fields...)
		if err != nil {
			return nil, err
		}
		extractors = append(extractors, ex)
	}
	return extractors, nil
}

// fieldFunc resolves a declared field kind.
func fieldFunc(fc yaml.Field, md *htmltomarkdown.Converter) (sitecrawl.FieldFunc, error) {
	needSelector := func() error {
		if fc.Selector == "" {
			return sitecrawl.Errorf(sitecrawl.EINVALID, "field %q of kind %q needs a selector", fc.Name, fc.Kind)
		}
		return nil
	}

	switch fc.Kind {
	case "url":
		return pageURL, nil
	case "title":
		return goquery.Title(), nil
	case "text":
		if err := needSelector(); err != nil {
			return nil, err
		}
		return goquery.Text(fc.Selector), nil
	case "texts":
		if err := needSelector(); err != nil {
			return nil, err
		}
		return goquery.Texts(fc.Selector), nil
	case "attr":
		if err := needSelector(); err != nil {
			return nil, err
		}
		if fc.Attr == "" {
			return nil, sitecrawl.Errorf(sitecrawl.EINVALID, "field %q of kind attr needs an attr", fc.Name)
		}
		return goquery.Attr(fc.Selector, fc.Attr), nil
	case "html":
		if err := needSelector(); err != nil {
			return nil, err
		}
		return goquery.HTML(fc.Selector), nil
	case "count":
		if err := needSelector(); err != nil {
			return nil, err
		}
		return goquery.Count(fc.Selector), nil
	case "meta":
		// The selector names the meta element, e.g. "description" or "og:title".
		if err := needSelector(); err != nil {
			return nil, err
		}
		return goquery.Meta(fc.Selector), nil
	case "markdown":
		return md.Field(fc.Selector), nil
	case "content":
		return trafilatura.Content(), nil
	case "article":
		return readability.Article(), nil
	default:
		return nil, sitecrawl.Errorf(sitecrawl.EINVALID, "field %q has unknown kind %q", fc.Name, fc.Kind)
	}
}

func pageURL(url string, _ *sitecrawl.Document) (any, string, error) {
	return url, "", nil
}
