package service_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"dealflow/internal/config"
	"dealflow/internal/domain"
	"dealflow/internal/port"
	"dealflow/internal/service"
	"dealflow/mocks"
)

func documentServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func webhookPayload(documentURL string) *service.WebhookPayload {
	return &service.WebhookPayload{
		SubmissionID: "sub-123",
		CreatedAt:    "2026-08-24T10:30:00Z",
		Answers: map[string]string{
			"Email":             "a@b.com",
			"Name - First Name": "Alice",
			"Project Name":      "Foo Bar",
			"Please upload your document in PDF or .DOCX Format": documentURL,
		},
	}
}

func newIntake(deals service.DealService, archive port.ObjectStorage, bucket string) service.IntakeService {
	return service.NewIntakeService(deals, archive,
		&config.ArchiveConfig{Bucket: bucket},
		&config.WebhookConfig{DownloadTimeout: 5 * time.Second})
}

func TestIntakeService_ProcessWebhook_Success(t *testing.T) {
	server := documentServer(t, http.StatusOK, "%PDF-1.4 fake deck bytes")
	deals := new(mocks.MockDealService)
	intake := newIntake(deals, nil, "")

	want := &domain.ProcessingResult{ProjectFolderID: "F1", UnderwriteDocID: "U1", KIQDocID: "K1"}
	deals.On("Process", mock.Anything,
		mock.MatchedBy(func(sub *domain.DealSubmission) bool {
			return sub.Email == "a@b.com" &&
				sub.FirstName == "Alice" &&
				sub.ProjectName == "Foo Bar" &&
				sub.SubmissionID == "sub-123" &&
				sub.CreatedAt != nil
		}),
		mock.MatchedBy(func(path string) bool {
			return strings.Contains(path, "dealflow-") && strings.HasSuffix(path, ".pdf")
		})).Return(want, nil)

	result, err := intake.ProcessWebhook(context.Background(), webhookPayload(server.URL+"/files/deck.pdf"))

	assert.NoError(t, err)
	assert.Equal(t, want, result)
	deals.AssertExpectations(t)
}

func TestIntakeService_ProcessWebhook_MissingFields(t *testing.T) {
	deals := new(mocks.MockDealService)
	intake := newIntake(deals, nil, "")

	payload := &service.WebhookPayload{
		SubmissionID: "sub-123",
		Answers: map[string]string{
			"Name - First Name": "Alice",
		},
	}

	result, err := intake.ProcessWebhook(context.Background(), payload)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrMissingField)
	assert.Contains(t, err.Error(), "Email")
	assert.Contains(t, err.Error(), "Project Name")
	assert.Contains(t, err.Error(), "Please upload your document in PDF or .DOCX Format")
	deals.AssertNotCalled(t, "Process", mock.Anything, mock.Anything, mock.Anything)
}

func TestIntakeService_ProcessWebhook_DownloadFailure(t *testing.T) {
	server := documentServer(t, http.StatusNotFound, "gone")
	deals := new(mocks.MockDealService)
	intake := newIntake(deals, nil, "")

	result, err := intake.ProcessWebhook(context.Background(), webhookPayload(server.URL+"/files/deck.pdf"))

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrDocumentUnavailable)
	deals.AssertNotCalled(t, "Process", mock.Anything, mock.Anything, mock.Anything)
}

func TestIntakeService_ProcessWebhook_ArchivesOriginal(t *testing.T) {
	server := documentServer(t, http.StatusOK, "%PDF-1.4 fake deck bytes")
	deals := new(mocks.MockDealService)
	archive := new(mocks.MockObjectStorage)
	intake := newIntake(deals, archive, "raw-deals")

	archive.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "raw-deals" && strings.HasPrefix(in.Key, "submissions/sub-123/")
	})).Return(&port.UploadOutput{Location: "s3://raw-deals"}, nil)
	deals.On("Process", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.ProcessingResult{}, nil)

	_, err := intake.ProcessWebhook(context.Background(), webhookPayload(server.URL+"/files/deck.pdf"))

	assert.NoError(t, err)
	archive.AssertExpectations(t)
}

func TestIntakeService_ProcessWebhook_ArchiveFailureStillProcesses(t *testing.T) {
	server := documentServer(t, http.StatusOK, "%PDF-1.4 fake deck bytes")
	deals := new(mocks.MockDealService)
	archive := new(mocks.MockObjectStorage)
	intake := newIntake(deals, archive, "raw-deals")

	archive.On("Upload", mock.Anything, mock.Anything).
		Return(nil, errors.New("bucket unreachable"))
	want := &domain.ProcessingResult{ProjectFolderID: "F1"}
	deals.On("Process", mock.Anything, mock.Anything, mock.Anything).Return(want, nil)

	result, err := intake.ProcessWebhook(context.Background(), webhookPayload(server.URL+"/files/deck.pdf"))

	assert.NoError(t, err)
	assert.Equal(t, want, result)
	deals.AssertExpectations(t)
}
