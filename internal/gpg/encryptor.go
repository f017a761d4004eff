// Package gpg encrypts finished archives for a set of recipient keys by
// invoking the gpg executable.
package gpg

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/stackbound/gitvault/internal/errors"
	"github.com/stackbound/gitvault/internal/exec"
)

// Extension is the suffix gpg appends to each encrypted file.
const Extension = ".gpg"

// Encryptor encrypts archive files in a single batch invocation.
type Encryptor struct {
	Bin          string
	Runner       exec.Commander
	KeepArchives bool
	Logger       *log.Logger
}

// EncryptAll encrypts every archive for every recipient in one gpg call and
// returns the encrypted file paths. On success the unencrypted originals are
// deleted unless KeepArchives is set; on failure they are always retained.
func (e *Encryptor) EncryptAll(ctx context.Context, archives, recipients []string) ([]string, error) {
	if len(recipients) == 0 {
		return nil, errors.ErrMissingRecipient
	}
	if len(archives) == 0 {
		return nil, nil
	}

	args := []string{"--yes", "--trust-model", "always", "--encrypt-files"}
	for _, recipient := range recipients {
		args = append(args, "--recipient", recipient)
	}
	args = append(args, archives...)

	output, err := e.Runner.Run(ctx, "", e.Bin, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrEncryption, errors.NewCommandError(e.Bin, args, output, err))
	}

	encrypted := make([]string, len(archives))
	for i, archive := range archives {
		encrypted[i] = archive + Extension
	}
	e.logger().Info("encrypted archives", "count", len(archives), "recipients", len(recipients))

	if !e.KeepArchives {
		for _, archive := range archives {
			if err := os.Remove(archive); err != nil {
				return encrypted, fmt.Errorf("%w: removing %s: %w", errors.ErrEncryption, archive, err)
			}
			e.logger().Debug("removed unencrypted archive", "archive", archive)
		}
	}

	return encrypted, nil
}

func (e *Encryptor) logger() *log.Logger {
	if e.Logger == nil {
		return log.Default()
	}
	return e.Logger
}
