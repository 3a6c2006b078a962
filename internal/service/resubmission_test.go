package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"dealflow/internal/domain"
	"dealflow/internal/port"
	"dealflow/mocks"
)

// fakeStore is an in-memory DocumentStore that persists folders across
// calls, so a second Process run observes what the first one created. Name
// matching mirrors the token-based search of the real store: a folder
// matches when its normalized name equals the normalized search key.
type fakeStore struct {
	nextID  int
	folders map[string]port.FileInfo // id -> info, top-level only
	docs    int
	uploads int
}

func newFakeStore() *fakeStore {
	return &fakeStore{folders: make(map[string]port.FileInfo)}
}

func (f *fakeStore) newID(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeStore) FindByNameContaining(_ context.Context, parentID, key string) ([]port.FileInfo, error) {
	var matches []port.FileInfo
	for _, info := range f.folders {
		if domain.NormalizeProjectName(info.Name) == domain.NormalizeProjectName(key) {
			matches = append(matches, info)
		}
	}
	return matches, nil
}

func (f *fakeStore) CreateFolder(_ context.Context, parentID, name string) (string, error) {
	id := f.newID("folder")
	if parentID == testDocCfg().BaseFolderID {
		f.folders[id] = port.FileInfo{ID: id, Name: name}
	}
	return id, nil
}

func (f *fakeStore) CreateTextDocument(_ context.Context, folderID, title, body string) (string, error) {
	f.docs++
	return f.newID("doc"), nil
}

func (f *fakeStore) UploadFile(_ context.Context, in port.UploadFileInput) (string, error) {
	f.uploads++
	return f.newID("file"), nil
}

func (f *fakeStore) ExtractPlainText(_ context.Context, fileID string) (string, error) {
	return "extracted text", nil
}

func TestDealService_Process_ResubmissionDetectedAsDuplicate(t *testing.T) {
	store := newFakeStore()
	gen := new(mocks.MockTextGenerator)
	mail := new(mocks.MockEmailSender)
	svc := newService(store, gen, mail)

	gen.On("Generate", mock.Anything, port.TaskUnderwrite, mock.Anything).
		Return(port.GenerationResult{Text: "analysis"})
	gen.On("Generate", mock.Anything, port.TaskKIQ, mock.Anything).
		Return(port.GenerationResult{Text: kiqModelOutput()})
	mail.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	first, err := svc.Process(context.Background(), testSubmission(), "/tmp/deck.pdf")
	assert.NoError(t, err)
	assert.False(t, first.DuplicateDetected)
	assert.Equal(t, 2, store.docs)
	assert.Equal(t, 1, store.uploads)

	// Same project again, with different separators in the name.
	resub := testSubmission()
	resub.ProjectName = "Foo-Bar"
	second, err := svc.Process(context.Background(), resub, "/tmp/deck.pdf")
	assert.NoError(t, err)
	assert.True(t, second.DuplicateDetected)
	assert.Equal(t, 2, store.docs, "no new documents on resubmission")
	assert.Equal(t, 1, store.uploads, "no new upload on resubmission")
}

func TestDealService_Process_DifferentEmailIsNotADuplicate(t *testing.T) {
	store := newFakeStore()
	gen := new(mocks.MockTextGenerator)
	mail := new(mocks.MockEmailSender)
	svc := newService(store, gen, mail)

	gen.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return(port.GenerationResult{Text: kiqModelOutput()})
	mail.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	first, err := svc.Process(context.Background(), testSubmission(), "/tmp/deck.pdf")
	assert.NoError(t, err)
	assert.False(t, first.DuplicateDetected)

	other := testSubmission()
	other.Email = "c@d.com"
	second, err := svc.Process(context.Background(), other, "/tmp/deck.pdf")
	assert.NoError(t, err)
	assert.False(t, second.DuplicateDetected, "same project name under a different email is a new deal")
	assert.Equal(t, 4, store.docs)
}

var _ port.DocumentStore = (*fakeStore)(nil)