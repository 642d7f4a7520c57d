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


// Package citation recognizes "<statute> <article>" patterns in queries and
// normalizes article numbers into their canonical label form.
//
// The grammar accepts "Article N", "Article N Clause M", the hyphenated
// "Article N-M" and the "§N[-M]" shorthand. A query that does not match is a
// normal negative classification outcome, not an error: the dispatcher falls
// through to the concept strategies.
package citation
