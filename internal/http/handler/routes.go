package handler

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"

	"docview/internal/extract"
	"docview/internal/service"
	"docview/internal/storage"
)

// RegisterRoutes attaches the application's HTTP routes to the Fiber app.
// Handlers stay thin: every route is a storage or extraction call plus a
// rendered page or redirect.
func RegisterRoutes(app *fiber.App, svc service.DocumentService, st storage.Storage, rnd *Renderer) {
	app.Get("/", Home(svc, rnd))
	app.Post("/upload", UploadFile(svc))
	app.Get("/view/:filename", ViewFile(svc, rnd))
	app.Get("/download_text/:filename", DownloadText(svc))
	app.Post("/update/:filename", UpdateFile(svc))
	app.Get("/delete/:filename", DeleteFile(svc))

	app.Get("/health", HealthCheck(st))
	app.Get("/healthz", LivenessProbe())
}

// filenameParam returns the :filename path parameter, URL-decoded when
// possible.
func filenameParam(c *fiber.Ctx) string {
	name := c.Params("filename")
	if dec, err := url.PathUnescape(name); err == nil {
		name = dec
	}
	return name
}

func redirectHome(c *fiber.Ctx) error {
	return c.Redirect("/", fiber.StatusSeeOther)
}

// Home renders the listing page with the live storage directory contents.
func Home(svc service.DocumentService, rnd *Renderer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		files, err := svc.List(c.UserContext())
		if err != nil {
			return err
		}
		return rnd.Render(c, "index.html", fiber.Map{"Files": files})
	}
}

// UploadFile accepts one multipart file (field name: file) and writes it
// into the storage directory, overwriting any file of the same name.
func UploadFile(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		if err := svc.Upload(c.UserContext(), f, fh.Filename); err != nil {
			if errors.Is(err, storage.ErrInvalidName) {
				return writeError(c, fiber.StatusBadRequest, "INVALID_FILENAME", "invalid file name")
			}
			return err
		}
		return redirectHome(c)
	}
}

// ViewFile renders the preview page for a stored file. Missing or invalid
// names redirect to the listing.
func ViewFile(svc service.DocumentService, rnd *Renderer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := filenameParam(c)

		p, err := svc.Preview(c.UserContext(), name)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) || errors.Is(err, storage.ErrInvalidName) {
				return redirectHome(c)
			}
			return err
		}
		return rnd.Render(c, "view.html", fiber.Map{
			"Filename": p.Filename,
			"Content":  p.Content,
			"Images":   p.Images,
			"Editable": extract.Ext(p.Filename) == "txt",
		})
	}
}

// DownloadText returns the extracted text of a stored file as an attachment
// named <base>_extracted.txt. Missing file, unsupported type, blank text,
// and extraction failure each map to a distinct status.
func DownloadText(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := filenameParam(c)

		text, err := svc.ExtractText(c.UserContext(), name)
		if err != nil {
			var exErr *service.ExtractionError
			switch {
			case errors.Is(err, service.ErrNotFound), errors.Is(err, storage.ErrInvalidName):
				return c.Status(fiber.StatusNotFound).SendString("File not found")
			case errors.Is(err, service.ErrUnsupportedFormat):
				return c.Status(fiber.StatusBadRequest).SendString("Unsupported file type")
			case errors.Is(err, service.ErrNoText):
				return c.SendStatus(fiber.StatusNoContent)
			case errors.As(err, &exErr):
				return c.Status(fiber.StatusInternalServerError).
					SendString("Error extracting text: " + exErr.Reason)
			default:
				return err
			}
		}

		base := name[:len(name)-len(filepath.Ext(name))]
		c.Set(fiber.HeaderContentDisposition,
			fmt.Sprintf("attachment; filename=%q", base+"_extracted.txt"))
		c.Type("txt", "utf-8")
		return c.SendString(text)
	}
}

// UpdateFile overwrites a .txt file's content with the trimmed form field
// new_content. Any other extension redirects without writing.
func UpdateFile(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := filenameParam(c)
		content := c.FormValue("new_content")

		err := svc.Update(c.UserContext(), name, content)
		if err != nil && !errors.Is(err, service.ErrNotEditable) && !errors.Is(err, storage.ErrInvalidName) {
			return err
		}
		return redirectHome(c)
	}
}

// DeleteFile removes a file and its image folder. Deleting an absent file
// still redirects successfully.
func DeleteFile(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := filenameParam(c)

		if err := svc.Delete(c.UserContext(), name); err != nil {
			if errors.Is(err, storage.ErrInvalidName) {
				return redirectHome(c)
			}
			return err
		}
		return redirectHome(c)
	}
}

// HealthCheck reports whether the storage directory is accessible.
func HealthCheck(st storage.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := st.Ping(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "storage unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a simple liveness endpoint.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
