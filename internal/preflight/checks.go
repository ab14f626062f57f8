package preflight

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sys/unix"

	"tcloud/internal/config"
	"tcloud/internal/services"
	"tcloud/internal/services/telestream"
)

// FactoryLister is the part of the API client used to probe connectivity.
type FactoryLister interface {
	GetFactories(ctx context.Context) ([]telestream.Factory, error)
}

// CheckCredentials verifies that both API keys are configured.
func CheckCredentials(cfg *config.Config) Result {
	const name = "Credentials"
	if err := cfg.ValidateCredentials(); err != nil {
		return Result{Name: name, Detail: "missing access or secret key"}
	}
	return Result{Name: name, Passed: true, Detail: "configured"}
}

// CheckAPI lists factories to confirm the API is reachable and the keys are
// accepted. It uses a 15-second timeout and a single attempt.
func CheckAPI(ctx context.Context, api FactoryLister) Result {
	const name = "Telestream Cloud API"

	checkCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	factories, err := api.GetFactories(checkCtx)
	if err != nil {
		return Result{Name: name, Detail: summarizeAPIError(err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("reachable (%d factories)", len(factories))}
}

func summarizeAPIError(err error) string {
	var protoErr *telestream.ProtocolError
	if errors.As(err, &protoErr) {
		switch protoErr.StatusCode {
		case 401, 403:
			return "auth failed (check access and secret key)"
		default:
			return fmt.Sprintf("request failed (%d)", protoErr.StatusCode)
		}
	}
	if errors.Is(err, services.ErrTransport) {
		return fmt.Sprintf("unreachable (%v)", errors.Unwrap(err))
	}
	return err.Error()
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckUploadSource verifies that path is a readable, non-empty regular file.
// The returned size is valid only when the result passed.
func CheckUploadSource(path string) (Result, int64) {
	const name = "Upload source"

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}, 0
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}, 0
	}
	if !info.Mode().IsRegular() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a regular file)", path)}, 0
	}
	if info.Size() == 0 {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: file is empty)", path)}, 0
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not readable: %v)", path, err)}, 0
	}
	return Result{
		Name:   name,
		Passed: true,
		Detail: fmt.Sprintf("%s (%s)", path, humanize.IBytes(uint64(info.Size()))),
	}, info.Size()
}

func historyDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Upload.HistoryPath)
}
