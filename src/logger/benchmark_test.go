// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger_test

import (
	"io"
	"strings"
	"testing"

	"github.com/H0llyW00dzZ/x509-der-inspector/src/logger"
)

func BenchmarkJSONLogger(b *testing.B) {
	long := strings.Repeat("30 82 01 0a ", 256)

	benchmarks := []struct {
		name   string
		silent bool
		log    func(l logger.Logger, i int)
	}{
		{"Printf", false, func(l logger.Logger, i int) { l.Printf("Decoded %d certificate(s) from %s", i, "chain.pem") }},
		{"Println", false, func(l logger.Logger, i int) { l.Println("Dumped", i, "bytes") }},
		{"LongMessage", false, func(l logger.Logger, i int) { l.Println(long) }},
		{"Silent", true, func(l logger.Logger, i int) { l.Printf("Decoded %d certificate(s)", i) }},
	}

	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			log := logger.NewJSONLogger(io.Discard, bm.silent)
			b.ReportAllocs()
			for i := 0; b.Loop(); i++ {
				bm.log(log, i)
			}
		})
	}

	b.Run("Parallel", func(b *testing.B) {
		log := logger.NewJSONLogger(io.Discard, false)
		b.ReportAllocs()
		b.RunParallel(func(pb *testing.PB) {
			for i := 0; pb.Next(); i++ {
				log.Printf("Decoded %d certificate(s)", i)
			}
		})
	})
}

func BenchmarkCLILogger(b *testing.B) {
	log := logger.NewCLILogger()
	log.SetOutput(io.Discard)
	b.ReportAllocs()
	for i := 0; b.Loop(); i++ {
		log.Printf("Decoded %d certificate(s) from %s", i, "chain.pem")
	}
}
