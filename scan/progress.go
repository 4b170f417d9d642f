// Copyright 2017-25 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package scan

import (
	"fmt"
	"io"
	"os"

	pb "gopkg.in/cheggaaa/pb.v1"
)

// progressReader wraps the file being streamed with a terminal progress
// bar tracking bytes consumed, the way the original tool's linear scan
// reported progress directly, rather than leaving it to a UI layer.
type progressReader struct {
	r   io.Reader
	bar *pb.ProgressBar
}

func newProgressReader(f *os.File) (*progressReader, error) {
	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	bar := pb.New(int(fi.Size())).SetUnits(pb.U_BYTES_DEC).SetWidth(79)
	bar.Output = os.Stderr
	bar.Start()

	return &progressReader{r: bar.NewProxyReader(f), bar: bar}, nil
}

func (p *progressReader) Read(buf []byte) (int, error) {
	return p.r.Read(buf)
}

func (p *progressReader) finish() {
	p.bar.Output = nil
	p.bar.NotPrint = true
	p.bar.Finish()

	fmt.Fprint(os.Stderr, "\033[2K\r")
}
