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

import "errors"

// Domain validation errors
var (
	// ErrInvalidArticle indicates an Article failed validation.
	ErrInvalidArticle = errors.New("invalid article")

	// ErrEmptyRecordID indicates the Id field is empty.
	ErrEmptyRecordID = errors.New("record id cannot be empty")

	// ErrEmptyStatuteCode indicates the StatuteCode field is empty.
	ErrEmptyStatuteCode = errors.New("statute code cannot be empty")

	// ErrEmptyStatuteName indicates the StatuteName field is empty.
	ErrEmptyStatuteName = errors.New("statute name cannot be empty")

	// ErrEmptyArticleLabel indicates the ArticleLabel field is empty.
	ErrEmptyArticleLabel = errors.New("article label cannot be empty")

	// ErrEmptyContent indicates the Contents field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrMismatchedRecordID indicates the Id does not start with the StatuteCode.
	ErrMismatchedRecordID = errors.New("record id does not match statute code")
)
