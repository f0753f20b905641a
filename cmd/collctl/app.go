// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package main

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/bombsimon/logrusr/v4"
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.opencensus.io/stats/view"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ikmak/mongoasync/mongo"
	"github.com/ikmak/mongoasync/mongo/options"
	"github.com/ikmak/mongoasync/x/mongo/driver"
	"github.com/ikmak/mongoasync/x/mongo/driver/mongoexec"
	"github.com/ikmak/mongoasync/x/mongo/driver/observability"
)

var errMissingArgument = errors.New("missing argument")

type config struct {
	uri         string
	database    string
	collection  string
	maxInFlight int64
	logger      string
	verbose     bool
	metrics     bool
}

func configFrom(c *cli.Context) config {
	return config{
		uri:         c.String("uri"),
		database:    c.String("db"),
		collection:  c.String("collection"),
		maxInFlight: c.Int64("max-in-flight"),
		logger:      c.String("logger"),
		verbose:     c.Bool("verbose"),
		metrics:     c.Bool("metrics"),
	}
}

// newLogger returns a logr.Logger writing JSON lines to w through the named
// backend.
func newLogger(w io.Writer, backend string, verbose bool) (logr.Logger, error) {
	switch backend {
	case "zap":
		level := zap.InfoLevel
		if verbose {
			level = zap.DebugLevel
		}
		core := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(w), level)
		return zapr.NewLogger(zap.New(core)), nil
	case "logrus":
		l := logrus.New()
		l.SetOutput(w)
		l.SetFormatter(&logrus.JSONFormatter{})
		if verbose {
			l.SetLevel(logrus.TraceLevel)
		}
		return logrusr.New(l), nil
	}
	return logr.Discard(), errors.Errorf("unknown logger %q", backend)
}

func loggerOptions(cfg config, sink logr.LogSink) *options.LoggerOptions {
	opts := options.Logger().SetSink(sink)
	if cfg.verbose {
		opts.SetComponentLevel(options.LogComponentAll, options.LogLevelDebug)
	} else {
		opts.SetComponentLevel(options.LogComponentCollection, options.LogLevelInfo)
	}
	return opts
}

// connectFunc returns an executor for cfg and the function releasing it.
type connectFunc func(ctx context.Context, cfg config, sink logr.LogSink) (driver.Executor, func(context.Context) error, error)

// session holds the state shared by the commands of one invocation.
type session struct {
	out     io.Writer
	log     logr.Logger
	coll    *mongo.Collection[bson.D]
	release func(context.Context) error
}

func newApp(out, logOut io.Writer, connect connectFunc) *cli.App {
	s := &session{out: out, log: logr.Discard()}
	var cfg config

	app := &cli.App{
		Name:      "collctl",
		Usage:     "run operations on a MongoDB collection",
		Writer:    out,
		ErrWriter: logOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "uri",
				Value:   "mongodb://localhost:27017",
				Usage:   "connection string of the deployment",
				EnvVars: []string{"COLLCTL_URI"},
			},
			&cli.StringFlag{
				Name:  "db",
				Value: "test",
				Usage: "database name",
			},
			&cli.StringFlag{
				Name:     "collection",
				Aliases:  []string{"c"},
				Usage:    "collection name",
				Required: true,
			},
			&cli.Int64Flag{
				Name:  "max-in-flight",
				Value: mongoexec.DefaultMaxInFlight,
				Usage: "maximum number of operations running at once",
			},
			&cli.StringFlag{
				Name:  "logger",
				Value: "zap",
				Usage: "log backend, zap or logrus",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log every dispatched operation",
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "log client metrics before exiting",
			},
		},
		Before: func(c *cli.Context) error {
			cfg = configFrom(c)
			l, err := newLogger(logOut, cfg.logger, cfg.verbose)
			if err != nil {
				return err
			}
			s.log = l

			if cfg.metrics {
				if err := view.Register(observability.AllViews...); err != nil {
					return errors.Wrap(err, "registering views")
				}
			}

			exec, release, err := connect(c.Context, cfg, l.GetSink())
			if err != nil {
				return err
			}
			s.release = release

			coll, err := mongo.NewCollection[bson.D](exec, cfg.database, cfg.collection,
				options.Collection().SetLogger(loggerOptions(cfg, l.GetSink())))
			if err != nil {
				return err
			}
			s.coll = coll
			return nil
		},
		After: func(c *cli.Context) error {
			if cfg.metrics {
				s.logMetrics()
				view.Unregister(observability.AllViews...)
			}
			if s.release == nil {
				return nil
			}
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return s.release(ctx)
		},
		Commands: s.commands(),
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	sort.Sort(cli.CommandsByName(app.Commands))
	return app
}

func (s *session) logMetrics() {
	for _, v := range observability.AllViews {
		rows, err := view.RetrieveData(v.Name)
		if err != nil {
			s.log.Error(err, "retrieving metric failed", "view", v.Name)
			continue
		}
		for _, row := range rows {
			tags := make(map[string]string, len(row.Tags))
			for _, tg := range row.Tags {
				tags[tg.Key.Name()] = tg.Value
			}
			s.log.Info("metric", "view", v.Name, "tags", tags, "value", row.Data)
		}
	}
}
