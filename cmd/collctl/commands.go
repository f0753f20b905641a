// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/pretty"
	"github.com/urfave/cli/v2"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/sync/errgroup"
)

func filterFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "filter",
		Value: "{}",
		Usage: "query filter as extended JSON",
	}
}

func (s *session) commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:   "count",
			Usage:  "count the documents matching a filter",
			Flags:  []cli.Flag{filterFlag()},
			Action: s.count,
		},
		{
			Name:  "find",
			Usage: "print the documents matching a filter",
			Flags: []cli.Flag{
				filterFlag(),
				&cli.StringFlag{Name: "sort", Usage: "sort specification as extended JSON"},
				&cli.Int64Flag{Name: "limit", Usage: "maximum number of documents to print"},
				&cli.Int64Flag{Name: "skip", Usage: "number of documents to skip"},
				&cli.BoolFlag{Name: "pretty", Usage: "indent the printed documents"},
			},
			Action: s.find,
		},
		{
			Name:      "insert",
			Usage:     "insert documents given as extended JSON",
			ArgsUsage: "DOCUMENT...",
			Action:    s.insert,
		},
		{
			Name:      "distinct",
			Usage:     "print the distinct values of a field",
			ArgsUsage: "FIELD",
			Flags:     []cli.Flag{filterFlag()},
			Action:    s.distinct,
		},
		{
			Name:   "indexes",
			Usage:  "print the indexes of the collection",
			Action: s.indexes,
		},
		{
			Name:   "stats",
			Usage:  "print the document count and index names",
			Action: s.stats,
		},
	}
}

func parseDocument(s string) (bson.D, error) {
	var doc bson.D
	if err := bson.UnmarshalExtJSON([]byte(s), false, &doc); err != nil {
		return nil, errors.Wrapf(err, "invalid document %q", s)
	}
	return doc, nil
}

func (s *session) count(c *cli.Context) error {
	filter, err := parseDocument(c.String("filter"))
	if err != nil {
		return err
	}
	n, err := s.coll.Count(c.Context, filter).Get(c.Context)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(s.out, n)
	return err
}

func (s *session) find(c *cli.Context) error {
	filter, err := parseDocument(c.String("filter"))
	if err != nil {
		return err
	}
	it := s.coll.Find(filter).Limit(c.Int64("limit")).Skip(c.Int64("skip"))
	if c.IsSet("sort") {
		sort, err := parseDocument(c.String("sort"))
		if err != nil {
			return err
		}
		it = it.Sort(sort)
	}

	_, err = it.ForEach(c.Context, s.printer(c.Bool("pretty"))).Get(c.Context)
	return err
}

// printer returns a function writing documents as relaxed extended JSON, one
// per line unless indented.
func (s *session) printer(indent bool) func(bson.D) error {
	return func(doc bson.D) error {
		b, err := bson.MarshalExtJSON(doc, false, false)
		if err != nil {
			return err
		}
		if indent {
			_, err = s.out.Write(pretty.Pretty(b))
			return err
		}
		_, err = fmt.Fprintln(s.out, string(b))
		return err
	}
}

func (s *session) insert(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.Wrap(errMissingArgument, "DOCUMENT")
	}
	docs := make([]bson.D, 0, c.NArg())
	for _, arg := range c.Args().Slice() {
		doc, err := parseDocument(arg)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}

	res, err := s.coll.InsertMany(c.Context, docs).Get(c.Context)
	if err != nil {
		return err
	}
	if !res.Acknowledged {
		s.log.Info("insert was not acknowledged")
	}
	_, err = fmt.Fprintf(s.out, "inserted %d documents\n", len(res.InsertedIDs))
	return err
}

func (s *session) distinct(c *cli.Context) error {
	field := c.Args().First()
	if field == "" {
		return errors.Wrap(errMissingArgument, "FIELD")
	}
	filter, err := parseDocument(c.String("filter"))
	if err != nil {
		return err
	}

	vals, err := s.coll.Distinct(c.Context, field, filter).Get(c.Context)
	if err != nil {
		return err
	}
	for _, v := range vals {
		if _, err := fmt.Fprintln(s.out, v); err != nil {
			return err
		}
	}
	return nil
}

func (s *session) indexes(c *cli.Context) error {
	specs, err := s.coll.ListIndexes(c.Context).Get(c.Context)
	if err != nil {
		return err
	}
	printSpec := s.printer(false)
	for _, spec := range specs {
		if err := printSpec(spec); err != nil {
			return err
		}
	}
	return nil
}

// stats runs its reads concurrently and fails with the first error.
func (s *session) stats(c *cli.Context) error {
	var (
		count int64
		names []string
	)

	g, ctx := errgroup.WithContext(c.Context)
	g.Go(func() error {
		n, err := s.coll.Count(ctx, bson.D{}).Get(ctx)
		count = n
		return err
	})
	g.Go(func() error {
		specs, err := s.coll.ListIndexes(ctx).Get(ctx)
		for _, spec := range specs {
			if name, ok := spec.Map()["name"].(string); ok {
				names = append(names, name)
			}
		}
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Error(err, "stats failed", "namespace", s.coll.Namespace().FullName())
		return err
	}

	_, err := fmt.Fprintf(s.out, "documents: %d\nindexes: %s\n", count, strings.Join(names, ", "))
	return err
}
