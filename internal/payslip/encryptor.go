package payslip

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"go-payroll/internal/shared/apperror"
)

//go:generate mockgen -source=encryptor.go -destination=mock/encryptor_mock.go -package=mock
type Encryptor interface {
	Encrypt(ctx context.Context, document []byte, userPassword, ownerPassword string) ([]byte, error)
}

const qpdfTimeout = 30 * time.Second

// qpdfEncryptor shells out to the qpdf binary. Temp file names are uuids so
// concurrent encryptions in the same directory never collide.
type qpdfEncryptor struct {
	binary  string
	workDir string
}

func NewQPDFEncryptor(workDir string) Encryptor {
	return &qpdfEncryptor{binary: "qpdf", workDir: workDir}
}

func (e *qpdfEncryptor) Encrypt(
	ctx context.Context,
	document []byte,
	userPassword, ownerPassword string,
) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, qpdfTimeout)
	defer cancel()

	inPath := filepath.Join(e.workDir, uuid.New().String()+".pdf")
	outPath := filepath.Join(e.workDir, uuid.New().String()+".pdf")

	if err := os.WriteFile(inPath, document, 0o600); err != nil {
		return nil, e.retryable(err, "write temp document")
	}
	defer os.Remove(inPath)
	defer os.Remove(outPath)

	cmd := exec.CommandContext(
		ctx,
		e.binary,
		"--encrypt", userPassword, ownerPassword, "256",
		"--",
		inPath,
		outPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, e.retryable(fmt.Errorf("%w: %s", err, out), "run qpdf")
	}

	encrypted, err := os.ReadFile(outPath)
	if err != nil {
		return nil, e.retryable(err, "read encrypted document")
	}

	return encrypted, nil
}

// Every failure mode here is environmental (disk, binary, timeout), so all of
// them surface as retryable.
func (e *qpdfEncryptor) retryable(err error, op string) error {
	return apperror.Wrap(
		fmt.Errorf("%s: %w", op, err),
		apperror.CodeRenderingFailure,
		"payslip encryption failed, retry later",
		http.StatusServiceUnavailable,
	)
}
