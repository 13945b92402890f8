// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package gc provides reusable byte buffer pooling to reduce garbage collection overhead.
// It abstracts the [bytebufferpool] library so that the DER encoder and the JSON
// logger can assemble their output without allocating a fresh buffer per call.
//
// Buffers taken from the pool must be reset before they are put back, and
// their bytes must be copied out before the buffer is reused:
//
//	buf := gc.Default.Get()
//	defer func() {
//		buf.Reset()
//		gc.Default.Put(buf)
//	}()
//
//	buf.WriteByte(0x30)
//	out := gc.Copy(buf)
//
// [bytebufferpool]: https://github.com/valyala/bytebufferpool
package gc
