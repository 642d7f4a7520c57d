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


package core

import (
	"fmt"
	"strings"
)

// ValidateArticle validates an Article according to domain rules.
//
// Validation rules:
//   - Id must not be empty and must be prefixed by StatuteCode
//   - StatuteCode, StatuteName and ArticleLabel must not be empty
//   - Contents must not be empty
//
// NOT validated (populated by processors):
//   - Vector (can be empty until the embedding processor runs)
//   - ContentHash (recomputed by the ingestion pipeline)
func ValidateArticle(article *Article) error {
	if article == nil {
		return fmt.Errorf("%w: article is nil", ErrInvalidArticle)
	}

	if article.Id == "" {
		return fmt.Errorf("%w: %w", ErrInvalidArticle, ErrEmptyRecordID)
	}

	if article.StatuteCode == "" {
		return fmt.Errorf("%w: %w", ErrInvalidArticle, ErrEmptyStatuteCode)
	}

	if article.StatuteName == "" {
		return fmt.Errorf("%w: %w", ErrInvalidArticle, ErrEmptyStatuteName)
	}

	if article.ArticleLabel == "" {
		return fmt.Errorf("%w: %w", ErrInvalidArticle, ErrEmptyArticleLabel)
	}

	if article.Contents == "" {
		return fmt.Errorf("%w: %w", ErrInvalidArticle, ErrEmptyContent)
	}

	if !strings.HasPrefix(string(article.Id), article.StatuteCode+"-") {
		return fmt.Errorf("%w: %w: id %q, code %q",
			ErrInvalidArticle, ErrMismatchedRecordID, article.Id, article.StatuteCode)
	}

	return nil
}
