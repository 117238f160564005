package service

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	storeMocks "docview/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func buildDOCX(t *testing.T, paragraphs []string, media map[string][]byte) []byte {
	t.Helper()
	var body strings.Builder
	body.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(body.String()))
	require.NoError(t, err)
	for name, data := range media {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDocumentService_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		r := strings.NewReader("hello")
		mStore.On("Save", ctx, "a.txt", r).Return(int64(5), nil)

		svc := NewDocumentService(mStore, nil)
		assert.NoError(t, svc.Upload(ctx, r, "a.txt"))
		mStore.AssertExpectations(t)
	})

	t.Run("nil reader", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		svc := NewDocumentService(mStore, nil)
		assert.Error(t, svc.Upload(ctx, nil, "a.txt"))
	})

	t.Run("storage error", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		r := strings.NewReader("hello")
		mStore.On("Save", ctx, "a.txt", r).Return(int64(0), errors.New("disk full"))

		svc := NewDocumentService(mStore, nil)
		assert.Error(t, svc.Upload(ctx, r, "a.txt"))
	})
}

func TestDocumentService_Preview(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mStore.On("Exists", "gone.txt").Return(false)

		svc := NewDocumentService(mStore, nil)
		_, err := svc.Preview(ctx, "gone.txt")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("txt content", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mStore.On("Exists", "a.txt").Return(true)
		mStore.On("ReadAll", ctx, "a.txt").Return([]byte("hello"), nil)

		svc := NewDocumentService(mStore, nil)
		p, err := svc.Preview(ctx, "a.txt")
		require.NoError(t, err)
		assert.Equal(t, "hello", p.Content)
		assert.Empty(t, p.Images)
	})

	t.Run("unsupported format placeholder", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mStore.On("Exists", "file.xyz").Return(true)
		mStore.On("ReadAll", ctx, "file.xyz").Return([]byte("binary"), nil)

		svc := NewDocumentService(mStore, nil)
		p, err := svc.Preview(ctx, "file.xyz")
		require.NoError(t, err)
		assert.Equal(t, "[Unsupported file format for preview.]", p.Content)
	})

	t.Run("empty txt placeholder", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mStore.On("Exists", "blank.txt").Return(true)
		mStore.On("ReadAll", ctx, "blank.txt").Return([]byte("  \n "), nil)

		svc := NewDocumentService(mStore, nil)
		p, err := svc.Preview(ctx, "blank.txt")
		require.NoError(t, err)
		assert.Equal(t, "[No readable content found.]", p.Content)
	})

	t.Run("empty docx placeholder", func(t *testing.T) {
		data := buildDOCX(t, []string{"", "  "}, nil)
		mStore := new(storeMocks.MockStorage)
		mStore.On("Exists", "empty.docx").Return(true)
		mStore.On("ReadAll", ctx, "empty.docx").Return(data, nil)

		svc := NewDocumentService(mStore, nil)
		p, err := svc.Preview(ctx, "empty.docx")
		require.NoError(t, err)
		assert.Equal(t, "[This DOCX file appears empty or unsupported.]", p.Content)
	})

	t.Run("docx with text and images", func(t *testing.T) {
		data := buildDOCX(t, []string{"Body text"}, map[string][]byte{
			"word/media/image1.png": []byte("png-a"),
			"word/media/image2.jpg": []byte("jpg-b"),
		})
		mStore := new(storeMocks.MockStorage)
		mStore.On("Exists", "doc.docx").Return(true)
		mStore.On("ReadAll", ctx, "doc.docx").Return(data, nil)
		mStore.On("SaveImage", "doc.docx_images", "image1.png", []byte("png-a")).
			Return("/uploads/doc.docx_images/image1.png", nil)
		mStore.On("SaveImage", "doc.docx_images", "image2.jpg", []byte("jpg-b")).
			Return("/uploads/doc.docx_images/image2.jpg", nil)

		svc := NewDocumentService(mStore, nil)
		p, err := svc.Preview(ctx, "doc.docx")
		require.NoError(t, err)
		assert.Equal(t, "Body text", p.Content)
		assert.Len(t, p.Images, 2)
		mStore.AssertExpectations(t)
	})

	t.Run("parse failure placeholder", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mStore.On("Exists", "broken.docx").Return(true)
		mStore.On("ReadAll", ctx, "broken.docx").Return([]byte("not a zip"), nil)

		svc := NewDocumentService(mStore, nil)
		p, err := svc.Preview(ctx, "broken.docx")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(p.Content, "[Error reading file:"), p.Content)
	})
}

func TestDocumentService_ExtractText(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		filename string
		exists   bool
		data     []byte
		wantText string
		wantErr  error
	}{
		{
			name:     "missing file",
			filename: "missing.txt",
			exists:   false,
			wantErr:  ErrNotFound,
		},
		{
			name:     "unsupported extension",
			filename: "file.xyz",
			exists:   true,
			data:     []byte("data"),
			wantErr:  ErrUnsupportedFormat,
		},
		{
			name:     "whitespace only",
			filename: "blank.txt",
			exists:   true,
			data:     []byte("   \n "),
			wantErr:  ErrNoText,
		},
		{
			name:     "txt keeps blank lines",
			filename: "a.txt",
			exists:   true,
			data:     []byte("one\n\n\n\ntwo"),
			wantText: "one\n\n\n\ntwo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mStore.On("Exists", tt.filename).Return(tt.exists)
			if tt.exists {
				mStore.On("ReadAll", ctx, tt.filename).Return(tt.data, nil)
			}

			svc := NewDocumentService(mStore, nil)
			text, err := svc.ExtractText(ctx, tt.filename)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, text)
		})
	}

	t.Run("parse failure", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mStore.On("Exists", "broken.pdf").Return(true)
		mStore.On("ReadAll", ctx, "broken.pdf").Return([]byte("junk"), nil)

		svc := NewDocumentService(mStore, nil)
		_, err := svc.ExtractText(ctx, "broken.pdf")
		var exErr *ExtractionError
		require.ErrorAs(t, err, &exErr)
		assert.NotEmpty(t, exErr.Reason)
	})
}

func TestDocumentService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("txt trimmed and written", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mStore.On("WriteText", ctx, "a.txt", "new content").Return(nil)

		svc := NewDocumentService(mStore, nil)
		assert.NoError(t, svc.Update(ctx, "a.txt", "  new content \n"))
		mStore.AssertExpectations(t)
	})

	t.Run("non-txt rejected without writing", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)

		svc := NewDocumentService(mStore, nil)
		assert.ErrorIs(t, svc.Update(ctx, "a.pdf", "text"), ErrNotEditable)
		mStore.AssertNotCalled(t, "WriteText", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDocumentService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes file and image folder", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mStore.On("Delete", ctx, "doc.docx").Return(nil)
		mStore.On("RemoveDir", ctx, "doc.docx_images").Return(nil)

		svc := NewDocumentService(mStore, nil)
		assert.NoError(t, svc.Delete(ctx, "doc.docx"))
		mStore.AssertExpectations(t)
	})

	t.Run("delete error propagates", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mStore.On("Delete", ctx, "a.txt").Return(errors.New("permission denied"))

		svc := NewDocumentService(mStore, nil)
		assert.Error(t, svc.Delete(ctx, "a.txt"))
		mStore.AssertNotCalled(t, "RemoveDir", mock.Anything, mock.Anything)
	})
}
