// Copyright 2025 Jurispect Labs
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


package storage

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"

	"github.com/jurispect/statcite/core"
)

// MarshalArticle serializes an Article to bytes in MUS format.
func MarshalArticle(article *core.Article) []byte {
	buf := make([]byte, sizeArticle(article))
	n := ord.String.Marshal(string(article.Id), buf)
	n += ord.String.Marshal(article.StatuteCode, buf[n:])
	n += ord.String.Marshal(article.StatuteName, buf[n:])
	n += ord.String.Marshal(article.ArticleLabel, buf[n:])
	n += ord.String.Marshal(article.Chapter, buf[n:])
	n += ord.String.Marshal(article.Category, buf[n:])
	n += ord.String.Marshal(article.Contents, buf[n:])
	n += varint.Uint64.Marshal(article.ContentHash, buf[n:])
	n += varint.Int.Marshal(len(article.Vector), buf[n:])
	for _, v := range article.Vector {
		n += raw.Float32.Marshal(v, buf[n:])
	}
	n += varint.Int64.Marshal(article.InsertedAt.UnixMicro(), buf[n:])
	varint.Int64.Marshal(article.UpdatedAt.UnixMicro(), buf[n:])
	return buf
}

// UnmarshalArticle deserializes an Article from bytes.
func UnmarshalArticle(data []byte) (*core.Article, error) {
	article := &core.Article{}

	id, n, err := ord.String.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	article.Id = core.RecordID(id)

	strs := []*string{
		&article.StatuteCode,
		&article.StatuteName,
		&article.ArticleLabel,
		&article.Chapter,
		&article.Category,
		&article.Contents,
	}
	for _, dst := range strs {
		var (
			s string
			m int
		)
		s, m, err = ord.String.Unmarshal(data[n:])
		if err != nil {
			return nil, err
		}
		*dst = s
		n += m
	}

	hash, m, err := varint.Uint64.Unmarshal(data[n:])
	if err != nil {
		return nil, err
	}
	article.ContentHash = hash
	n += m

	vecLen, m, err := varint.Int.Unmarshal(data[n:])
	if err != nil {
		return nil, err
	}
	n += m
	if vecLen < 0 {
		return nil, ErrSerializationFailed
	}
	if vecLen > 0 {
		article.Vector = make([]float32, vecLen)
		for i := 0; i < vecLen; i++ {
			var v float32
			v, m, err = raw.Float32.Unmarshal(data[n:])
			if err != nil {
				return nil, err
			}
			article.Vector[i] = v
			n += m
		}
	}

	inserted, m, err := varint.Int64.Unmarshal(data[n:])
	if err != nil {
		return nil, err
	}
	n += m
	updated, _, err := varint.Int64.Unmarshal(data[n:])
	if err != nil {
		return nil, err
	}
	article.InsertedAt = time.UnixMicro(inserted).UTC()
	article.UpdatedAt = time.UnixMicro(updated).UTC()
	return article, nil
}

func sizeArticle(article *core.Article) int {
	size := ord.String.Size(string(article.Id))
	size += ord.String.Size(article.StatuteCode)
	size += ord.String.Size(article.StatuteName)
	size += ord.String.Size(article.ArticleLabel)
	size += ord.String.Size(article.Chapter)
	size += ord.String.Size(article.Category)
	size += ord.String.Size(article.Contents)
	size += varint.Uint64.Size(article.ContentHash)
	size += varint.Int.Size(len(article.Vector))
	for _, v := range article.Vector {
		size += raw.Float32.Size(v)
	}
	size += varint.Int64.Size(article.InsertedAt.UnixMicro())
	size += varint.Int64.Size(article.UpdatedAt.UnixMicro())
	return size
}

// MarshalCheckpoint serializes a Checkpoint to bytes in MUS format.
func MarshalCheckpoint(checkpoint *core.Checkpoint) []byte {
	size := ord.String.Size(checkpoint.Name) +
		ord.String.Size(string(checkpoint.LastID)) +
		varint.Int64.Size(checkpoint.UpdatedAt.UnixMicro())
	buf := make([]byte, size)
	n := ord.String.Marshal(checkpoint.Name, buf)
	n += ord.String.Marshal(string(checkpoint.LastID), buf[n:])
	varint.Int64.Marshal(checkpoint.UpdatedAt.UnixMicro(), buf[n:])
	return buf
}

// UnmarshalCheckpoint deserializes a Checkpoint from bytes.
func UnmarshalCheckpoint(data []byte) (*core.Checkpoint, error) {
	name, n, err := ord.String.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	lastID, m, err := ord.String.Unmarshal(data[n:])
	if err != nil {
		return nil, err
	}
	n += m
	updated, _, err := varint.Int64.Unmarshal(data[n:])
	if err != nil {
		return nil, err
	}
	return &core.Checkpoint{
		Name:      name,
		LastID:    core.RecordID(lastID),
		UpdatedAt: time.UnixMicro(updated).UTC(),
	}, nil
}
