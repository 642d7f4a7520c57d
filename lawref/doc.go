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


// Package lawref holds the static legal reference tables and the resolvers
// built on top of them:
//
//   - statute name -> statute code
//   - abbreviation/alias -> canonical statute name
//   - legal concept -> statute (with an optional canonical concept term)
//
// All tables are immutable after package initialization and safe for
// concurrent reads without locking. Resolution is total: unknown inputs are
// returned unchanged rather than treated as errors.
package lawref
