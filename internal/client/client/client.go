package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/studynotes/internal/client/models"
)

type Client interface {
	Register(ctx context.Context, email string, password []byte) error
	Login(ctx context.Context, email string, password []byte) error
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Upload(ctx context.Context, filename string, content io.Reader, branch, subject string) (*models.UploadResult, error)
	History(ctx context.Context) ([]models.History, error)
	// DownloadReport writes the latest report to w. ErrNoData means the
	// user has not uploaded anything yet.
	DownloadReport(ctx context.Context, w io.Writer) (int64, error)
}
