package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/studynotes/internal/common"
	"github.com/dmitrijs2005/studynotes/internal/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lecture = "Cells are the basic structural unit of all living organisms. " +
	"Mitochondria produce most of the chemical energy needed by the cell. " +
	"Ribosomes translate messenger RNA into chains of amino acids. " +
	"The nucleus stores the genetic material of eukaryotic cells. " +
	"Lysosomes break down waste materials and cellular debris. " +
	"Short note. " +
	"The cell membrane controls what enters and leaves the cell."

func register(t *testing.T, e *env, email string) *Session {
	t.Helper()
	sess, err := e.users.Register(context.Background(), Credentials{Email: email, Password: "pw"})
	require.NoError(t, err)
	return sess
}

func TestProcess_TextUpload(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	sess := register(t, e, "student@example.com")

	h, err := e.docs.Process(ctx, sess, Upload{
		Filename: "bio notes.TXT",
		Branch:   "Science",
		Subject:  "Biology",
		Data:     []byte(lecture),
	})
	require.NoError(t, err)

	assert.Equal(t, sess.UserID, h.UserID)
	assert.Equal(t, "student@example.com", h.Email)
	assert.Equal(t, "Science", h.Branch)
	assert.Equal(t, "Biology", h.Subject)
	assert.Equal(t, "bio notes.TXT", h.Filename)
	assert.True(t, strings.HasSuffix(h.StorageKey, "-bio_notes.TXT"), h.StorageKey)

	wantSummary := strings.Join([]string{
		"Cells are the basic structural unit of all living organisms.",
		"Mitochondria produce most of the chemical energy needed by the cell.",
		"Ribosomes translate messenger RNA into chains of amino acids.",
		"The nucleus stores the genetic material of eukaryotic cells.",
		"Lysosomes break down waste materials and cellular debris.",
	}, " ")
	assert.Equal(t, wantSummary, h.Summary)
	assert.Len(t, h.Questions, 5)
	assert.Equal(t, "Explain in detail: Cells are the basic structural unit of all living organisms?", h.Questions[0])

	assert.Equal(t, 1, e.store.len())

	list, err := e.docs.ListHistory(ctx, sess.UserID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, h.ID, list[0].ID)
	assert.Equal(t, h.Questions, list[0].Questions)
}

func TestProcess_Rejections(t *testing.T) {
	e := newEnv(t)
	sess := register(t, e, "r@example.com")

	tests := []struct {
		name string
		up   Upload
		want error
	}{
		{"empty filename", Upload{Data: []byte(lecture)}, common.ErrEmptyFilename},
		{"executable", Upload{Filename: "setup.exe", Data: []byte("MZ")}, common.ErrUnsupportedFileType},
		{"whitespace text", Upload{Filename: "blank.txt", Data: []byte(" \n\t  \n")}, common.ErrEmptyText},
		{"broken pdf", Upload{Filename: "broken.pdf", Data: []byte("not a pdf")}, common.ErrUnreadableDocument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.docs.Process(context.Background(), sess, tt.up)
			require.ErrorIs(t, err, tt.want)
		})
	}

	assert.Equal(t, 0, e.store.len())
	list, err := e.docs.ListHistory(context.Background(), sess.UserID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProcess_StoreFailure(t *testing.T) {
	e := newEnv(t)
	sess := register(t, e, "s@example.com")
	e.store.putErr = errors.New("disk full")

	_, err := e.docs.Process(context.Background(), sess, Upload{Filename: "a.txt", Data: []byte(lecture)})
	require.ErrorIs(t, err, common.ErrorInternal)

	list, err := e.docs.ListHistory(context.Background(), sess.UserID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProcess_InsertFailureRemovesBlob(t *testing.T) {
	e := newEnv(t)
	ghost := &Session{UserID: "no-such-user", Email: "ghost@example.com"}

	_, err := e.docs.Process(context.Background(), ghost, Upload{Filename: "a.txt", Data: []byte(lecture)})
	require.ErrorIs(t, err, common.ErrorInternal)
	assert.Equal(t, 0, e.store.len())
}

func TestListHistory_NewestFirstAndOwned(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := register(t, e, "alice@example.com")
	bob := register(t, e, "bob@example.com")

	for i := 1; i <= 3; i++ {
		_, err := e.docs.Process(ctx, alice, Upload{
			Filename: fmt.Sprintf("a%d.txt", i), Subject: fmt.Sprintf("S%d", i), Data: []byte(lecture),
		})
		require.NoError(t, err)
	}
	_, err := e.docs.Process(ctx, bob, Upload{Filename: "b.txt", Data: []byte(lecture)})
	require.NoError(t, err)

	list, err := e.docs.ListHistory(ctx, alice.UserID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for _, h := range list {
		assert.Equal(t, alice.UserID, h.UserID)
	}
	for i := 1; i < len(list); i++ {
		assert.False(t, list[i].CreatedAt.After(list[i-1].CreatedAt), "list must be newest first")
	}
}

func TestLatestReport(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	sess := register(t, e, "pdf@example.com")

	_, err := e.docs.LatestReport(ctx, sess.UserID)
	require.ErrorIs(t, err, common.ErrorNotFound)

	_, err = e.docs.Process(ctx, sess, Upload{Filename: "n.txt", Branch: "Arts", Subject: "History", Data: []byte(lecture)})
	require.NoError(t, err)

	out, err := e.docs.LatestReport(ctx, sess.UserID)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	text, err := extract.NewExtractor(0).Extract(ctx, "report.pdf", out)
	require.NoError(t, err)
	assert.Contains(t, text, "History")
}

func TestLatestReport_ConcurrentUsersGetOwnReports(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	subjects := map[string]string{}
	var sessions []*Session
	for _, name := range []string{"first", "second"} {
		sess := register(t, e, name+"@example.com")
		subject := "Subject" + strings.ToUpper(name)
		_, err := e.docs.Process(ctx, sess, Upload{Filename: name + ".txt", Subject: subject, Data: []byte(lecture)})
		require.NoError(t, err)
		subjects[sess.UserID] = subject
		sessions = append(sessions, sess)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 10; i++ {
		for _, sess := range sessions {
			wg.Add(1)
			go func(sess *Session) {
				defer wg.Done()
				out, err := e.docs.LatestReport(ctx, sess.UserID)
				if err != nil {
					errs <- err
					return
				}
				text, err := extract.NewExtractor(0).Extract(ctx, "r.pdf", out)
				if err != nil {
					errs <- err
					return
				}
				for uid, subject := range subjects {
					if uid == sess.UserID && !strings.Contains(text, subject) {
						errs <- fmt.Errorf("report for %s lacks %s", sess.Email, subject)
					}
					if uid != sess.UserID && strings.Contains(text, subject) {
						errs <- fmt.Errorf("report for %s leaks %s", sess.Email, subject)
					}
				}
			}(sess)
		}
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
