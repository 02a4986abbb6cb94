package mail

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/dmitrijs2005/mercury/internal/filex"
)

type outboxFile struct {
	Emails []Message `json:"emails"`
}

// FileOutbox is the last-resort queue: a JSON document {"emails": [...]}
// used when the stored_emails table is unreachable as well.
type FileOutbox struct {
	mu   sync.Mutex
	path string
}

func NewFileOutbox(path string) *FileOutbox {
	return &FileOutbox{path: path}
}

func (o *FileOutbox) Path() string {
	return o.path
}

func (o *FileOutbox) read() ([]Message, error) {
	b, err := os.ReadFile(o.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read outbox: %w", err)
	}
	if len(b) == 0 {
		return nil, nil
	}
	var f outboxFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("decode outbox: %w", err)
	}
	return f.Emails, nil
}

func (o *FileOutbox) write(emails []Message) error {
	if emails == nil {
		emails = []Message{}
	}
	b, err := json.MarshalIndent(outboxFile{Emails: emails}, "", "\t")
	if err != nil {
		return err
	}
	if err := filex.WriteFileAtomic(o.path, b, 0o600); err != nil {
		return fmt.Errorf("write outbox: %w", err)
	}
	return nil
}

// Append adds msg to the end of the outbox, creating the file if needed.
func (o *FileOutbox) Append(msg Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	emails, err := o.read()
	if err != nil {
		return err
	}
	return o.write(append(emails, msg))
}

// List returns the queued messages; a missing file is an empty outbox.
func (o *FileOutbox) List() ([]Message, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.read()
}

// Drain hands every queued message to send and rewrites the file with the
// ones that failed. It returns how many were sent.
func (o *FileOutbox) Drain(send func(Message) error) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	emails, err := o.read()
	if err != nil || len(emails) == 0 {
		return 0, err
	}

	var kept []Message
	for _, e := range emails {
		if err := send(e); err != nil {
			kept = append(kept, e)
		}
	}
	return len(emails) - len(kept), o.write(kept)
}
