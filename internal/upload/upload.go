package upload

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// ErrExtension — расширение файла не входит в allow-list.
var ErrExtension = errors.New("файлы такого типа не принимаются, разрешен только .pdf")

var allowedExtensions = map[string]bool{
	".pdf": true,
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// Sanitize приводит имя файла к безопасному виду: отбрасывает путь
// и заменяет все подозрительные символы.
func Sanitize(filename string) string {
	name := filepath.Base(filename)
	return unsafeChars.ReplaceAllString(name, "_")
}

// Save кладет вложение в <staticDir>/uploads и возвращает относительный
// путь для записи в БД. Имя чистится, расширение проверяется по allow-list,
// случайный префикс защищает от коллизий имен.
func Save(fh *multipart.FileHeader, staticDir string) (string, error) {
	name := Sanitize(fh.Filename)

	ext := strings.ToLower(filepath.Ext(name))
	if !allowedExtensions[ext] {
		return "", ErrExtension
	}

	name = uuid.NewString()[:8] + "_" + name

	dir := filepath.Join(staticDir, "uploads")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return path.Join("uploads", name), nil
}
