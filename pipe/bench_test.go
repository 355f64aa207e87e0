// File: pipe/bench_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pipe

import (
	"testing"

	"github.com/momentics/hioload-ipc/api"
)

func BenchmarkPipe_PollTransfer(b *testing.B) {
	p := New(make([]byte, 64*1024))
	chunk := make([]byte, 1024)
	out := make([]byte, 1024)

	b.ReportAllocs()
	b.SetBytes(int64(len(chunk)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p.Write(chunk, api.NoWait); err != nil {
			b.Fatal(err)
		}
		if _, err := p.Read(out, api.NoWait); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPipe_BlockingPingPong(b *testing.B) {
	p := New(make([]byte, 64))
	chunk := make([]byte, 64)
	done := make(chan struct{})

	go func() {
		defer close(done)
		out := make([]byte, 64)
		for {
			if _, err := p.Read(out, api.Forever); err != nil {
				return
			}
		}
	}()

	b.SetBytes(int64(len(chunk)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for sent := chunk; len(sent) > 0; {
			n, err := p.Write(sent, api.Forever)
			if err == api.ErrWouldBlock {
				continue
			}
			if err != nil {
				b.Fatal(err)
			}
			sent = sent[n:]
		}
	}
	b.StopTimer()
	p.Close()
	<-done
}
