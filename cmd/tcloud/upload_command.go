package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"tcloud/internal/config"
	"tcloud/internal/logging"
	"tcloud/internal/preflight"
	"tcloud/internal/services/telestream"
	"tcloud/internal/uploadlog"
)

type uploadResult struct {
	UploadID  string   `json:"upload_id,omitempty"`
	File      string   `json:"file"`
	Size      int64    `json:"size"`
	FactoryID string   `json:"factory_id"`
	Location  string   `json:"location"`
	Profiles  []string `json:"profiles"`
	Finalized bool     `json:"finalized"`
}

func newUploadCommand(ctx *commandContext) *cobra.Command {
	var profiles []string
	var finalize bool

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a video file and start encodings",
		Long: "Upload a local video file in 5 MiB chunks. Encodings for the requested " +
			"profiles start once the upload completes.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve upload path: %w", err)
			}
			check, size := preflight.CheckUploadSource(path)
			if !check.Passed {
				return fmt.Errorf("cannot upload %s", check.Detail)
			}

			requested := cfg.Upload.Profiles
			if cmd.Flags().Changed("profiles") {
				requested = profiles
			}
			if !cmd.Flags().Changed("finalize") {
				finalize = cfg.Upload.Finalize
			}

			return ctx.withFactory(cmd, "upload", func(c context.Context, client *telestream.Client, factoryID string) error {
				job := uploadJob{
					client:    client,
					cfg:       cfg,
					logger:    logging.WithContext(c, ctx.loggerValue()),
					path:      path,
					size:      size,
					factoryID: factoryID,
					profiles:  requested,
					finalize:  finalize,
				}
				result, err := job.run(c, cmd)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, result)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s (%s) to factory %s\n",
					result.File, displayBytes(result.Size), result.FactoryID)
				if len(result.Profiles) > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "Encodings requested: %s\n", strings.Join(result.Profiles, ", "))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVar(&profiles, "profiles", nil, "Encoding profiles to apply (default from upload.profiles)")
	cmd.Flags().BoolVar(&finalize, "finalize", false, "Send a final \"bytes */size\" request after the last chunk")
	return cmd
}

type uploadJob struct {
	client    *telestream.Client
	cfg       *config.Config
	logger    *slog.Logger
	path      string
	size      int64
	factoryID string
	profiles  []string
	finalize  bool
}

func (j uploadJob) run(ctx context.Context, cmd *cobra.Command) (uploadResult, error) {
	lock, err := j.lockSource()
	if err != nil {
		return uploadResult{}, err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			j.logger.Warn("release upload lock failed", logging.Error(err))
		}
	}()

	history, record := j.beginHistory(ctx)
	if history != nil {
		defer history.Close()
	}

	result := uploadResult{
		File:      filepath.Base(j.path),
		Size:      j.size,
		FactoryID: j.factoryID,
		Profiles:  j.profiles,
	}
	progress := newUploadProgress(cmd.ErrOrStderr(), result.File, j.size)

	uploadErr := func() error {
		file, err := os.Open(j.path)
		if err != nil {
			return fmt.Errorf("open upload source: %w", err)
		}
		defer file.Close()

		session, err := j.client.StartUpload(ctx, j.factoryID, j.size, result.File, j.profiles...)
		if err != nil {
			return err
		}
		result.UploadID = session.ID
		result.Location = session.Location
		if history != nil {
			if err := history.SetLocation(ctx, record.ID, session.Location); err != nil {
				j.logger.Warn("record upload location failed", logging.Error(err))
			}
		}

		j.logger.Info("upload started",
			logging.String("file", result.File),
			logging.Int64("size", j.size),
			logging.String("location", session.Location),
		)
		defer progress.finish()
		if err := j.client.UploadFile(ctx, session, file, progress.callback()); err != nil {
			return err
		}
		if j.finalize {
			if err := j.client.FinalizeUpload(ctx, session, j.size); err != nil {
				return err
			}
			result.Finalized = true
		}
		return nil
	}()

	if history != nil {
		// Record the outcome even when ctx was cancelled.
		recordCtx := context.WithoutCancel(ctx)
		var recordErr error
		if uploadErr != nil {
			recordErr = history.Fail(recordCtx, record.ID, progress.bytesSent(), uploadErr)
		} else {
			recordErr = history.Complete(recordCtx, record.ID, j.size)
		}
		if recordErr != nil {
			j.logger.Warn("update upload history failed", logging.Error(recordErr))
		}
	}
	if uploadErr != nil {
		if errors.Is(uploadErr, context.Canceled) {
			return uploadResult{}, uploadErr
		}
		return uploadResult{}, fmt.Errorf("upload %s: %w", result.File, uploadErr)
	}
	j.logger.Info("upload completed", logging.String("file", result.File))
	return result, nil
}

// lockSource guards against a concurrent upload of the same file. Locks sit
// next to the history database, or in the user cache dir when history is
// off. Only a busy lock stops the upload; a lock that cannot be created is
// logged and the upload runs unguarded.
func (j uploadJob) lockSource() (*uploadlog.SourceLock, error) {
	lock, err := uploadlog.LockSource(j.lockDir(), j.path)
	if errors.Is(err, uploadlog.ErrSourceBusy) {
		return nil, err
	}
	if err != nil {
		j.logger.Warn("upload lock unavailable, continuing without it", logging.Error(err))
		return nil, nil
	}
	return lock, nil
}

func (j uploadJob) lockDir() string {
	if j.cfg.Upload.HistoryEnabled {
		return filepath.Join(filepath.Dir(j.cfg.Upload.HistoryPath), "locks")
	}
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "tcloud", "locks")
}

// beginHistory records the upload when history is enabled. History failures
// are logged and never block the upload.
func (j uploadJob) beginHistory(ctx context.Context) (*uploadlog.Store, uploadlog.Record) {
	if !j.cfg.Upload.HistoryEnabled {
		return nil, uploadlog.Record{}
	}
	store, err := uploadlog.Open(j.cfg.Upload.HistoryPath)
	if err != nil {
		j.logger.Warn("open upload history failed", logging.Error(err))
		return nil, uploadlog.Record{}
	}
	record, err := store.Begin(ctx, uploadlog.Record{
		SourcePath: j.path,
		FileName:   filepath.Base(j.path),
		FileSize:   j.size,
		FactoryID:  j.factoryID,
		Profiles:   j.profiles,
	})
	if err != nil {
		j.logger.Warn("record upload failed", logging.Error(err))
		_ = store.Close()
		return nil, uploadlog.Record{}
	}
	return store, record
}
