// Copyright 2025 go-highway Authors
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

package output

import "github.com/chenkaiidy/gemmlowp/hwy"

// wideKernels selects the hand-tuned Int32x16x1 kernels over Decompose16.
// They rely on 128-bit signed and unsigned saturating packs, so they are
// only enabled on targets that have both. HWY_NO_SIMD turns them off.
var wideKernels = hwy.Has128BitPacks() && !hwy.NoSimdEnv()

// WideKernels reports whether BindInt32x16 returns hand-tuned kernels for the
// stages listed in WideOverrides.
func WideKernels() bool { return wideKernels }
