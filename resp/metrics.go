// Copyright 2012 Gary Burd
//
// Licensed under the Apache License, Version 2.0 (the "License"): you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations
// under the License.

package resp

import (
	"go.opencensus.io/stats/view"

	"github.com/respio/respio/internal/observability"
)

// MetricViews returns the opencensus views recorded by clients created with
// the WithMetrics option. Register them with view.Register and a stats
// exporter to collect them.
func MetricViews() []*view.View {
	return observability.Views
}
