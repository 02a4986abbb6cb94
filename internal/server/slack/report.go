// Package slack posts the admin health report to a Slack incoming webhook.
package slack

import (
	"context"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/dmitrijs2005/mercury/internal/netx"
)

// Attachment colors used by the report.
const (
	ColorOffline = "#FF0032"
	ColorOnline  = "good"
	ColorInfo    = "#0000FF"
)

// Message is the incoming-webhook payload.
type Message struct {
	Text        string       `json:"text"`
	Attachments []Attachment `json:"attachments"`
}

type Attachment struct {
	Color    string  `json:"color"`
	Fallback string  `json:"fallback"`
	Fields   []Field `json:"fields"`
}

type Field struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

// Status is what the health check found.
type Status struct {
	Email    bool
	Database bool
}

// SystemInfo is the host section of the report.
type SystemInfo struct {
	Arch       string
	Goroutines int
	HeapInUse  uint64
	Reserved   uint64
	Uptime     time.Duration
}

var started = time.Now()

// CurrentSystem samples the running process.
func CurrentSystem() SystemInfo {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return SystemInfo{
		Arch:       runtime.GOARCH,
		Goroutines: runtime.NumGoroutine(),
		HeapInUse:  ms.HeapInuse,
		Reserved:   ms.Sys,
		Uptime:     time.Since(started),
	}
}

// HealthReport builds the message: offline services first, then online ones
// (Slack itself is online if the message arrives), then host details.
func HealthReport(st Status, sys SystemInfo) *Message {
	offline := Attachment{Color: ColorOffline, Fallback: "Offline services", Fields: []Field{}}
	online := Attachment{Color: ColorOnline, Fallback: "Online services", Fields: []Field{
		{Title: "Slack", Value: "Online", Short: true},
	}}

	for _, svc := range []struct {
		name string
		up   bool
	}{{"Email", st.Email}, {"Database", st.Database}} {
		if svc.up {
			online.Fields = append(online.Fields, Field{Title: svc.name, Value: "Online", Short: true})
		} else {
			offline.Fields = append(offline.Fields, Field{Title: svc.name, Value: "Offline", Short: true})
		}
	}

	info := Attachment{Color: ColorInfo, Fallback: "Extra information", Fields: []Field{
		{Title: "Architecture", Value: sys.Arch, Short: true},
		{Title: "Goroutines", Value: humanize.Comma(int64(sys.Goroutines)), Short: true},
		{Title: "Memory", Value: humanize.IBytes(sys.Reserved), Short: true},
		{Title: "Memory Usage", Value: humanize.IBytes(sys.HeapInUse), Short: true},
		{Title: "Uptime", Value: sys.Uptime.Round(time.Second).String(), Short: true},
	}}

	return &Message{Text: "Health Check", Attachments: []Attachment{offline, online, info}}
}

// post is swapped in tests.
var post = netx.PostJSON

// Notifier sends messages to one webhook.
type Notifier struct {
	webhook string
}

func NewNotifier(webhook string) *Notifier {
	return &Notifier{webhook: webhook}
}

func (n *Notifier) Send(ctx context.Context, msg *Message) error {
	return post(ctx, n.webhook, msg)
}
