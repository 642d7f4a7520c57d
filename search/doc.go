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


// Package search resolves free-form legal queries to ranked statute-article
// records.
//
// The Searcher classifies each query and runs an ordered strategy cascade,
// cheapest first:
//
//   - direct id lookup for a fully resolvable citation
//   - tolerant regex scan over statute name and article number
//   - statute-scoped keyword search on the article label (terminal for any
//     citation-shaped query)
//   - hybrid keyword + vector retrieval for concept queries, fused by a
//     vector-first positional merge
//
// The first strategy producing at least one result wins. Every response
// carries a strategy tag so callers and evaluation harnesses can tell how
// the results were produced.
package search
