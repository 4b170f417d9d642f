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

import "strings"

// urlTagKeys lists the tag keys considered likely to carry a scannable
// URL. The list is highly debatable; feel free to suggest improvements.
var urlTagKeys = []string{
	"brand:website",
	"contact:takeaway",
	"contact:url",
	"contact:webcam",
	"contact:website",
	"destination:url",
	"facebook",
	"fee:source",
	"flickr",
	"heritage:website",
	"image:0",
	"image2",
	"image:streetsign",
	"inscription:url",
	"instagram",
	"internet",
	"market:flea_market:opening_hours:url",
	"memorial:website",
	"menu:url",
	"name:etymology:website",
	"network:website",
	"note:url",
	"opening_hours:url",
	"operator:website",
	"picture",
	"post_office:website",
	"rail_trail:website",
	"railway:source",
	"source:1",
	"source:2",
	"source_2",
	"source2",
	"source:3",
	"source:heritage",
	"source:image",
	"source:office",
	"source:old_ref",
	"source:operator",
	"source:payment:contactless",
	"source:phone",
	"source:railway:radio",
	"source:railway:speed_limit_distant:speed",
	"source:railway:speed_limit:speed",
	"source:ref",
	"source_url",
	"source:url",
	"source:website",
	"symbol:url",
	"url",
	"url:official",
	"url:timetable",
	"video_2",
	"webcam",
	"website",
	"website_1",
	"website2",
	"website:booking",
	"website:DDB",
	"website:en",
	"website:LfDH",
	"website:menu",
	"website:orders",
	"website:regulation",
	"website:stock",
	"website:VDMT",
	"xmas:url",
}

func newURLTagKeySet() map[string]struct{} {
	set := make(map[string]struct{}, len(urlTagKeys))
	for _, key := range urlTagKeys {
		set[key] = struct{}{}
	}

	return set
}

// looksLikeURL reports whether value is worth treating as a URL: checking
// only the first four bytes is cheap and rules out most non-URL values
// before the caller consults the (more expensive) allowlist.
func looksLikeURL(value string) bool {
	return strings.HasPrefix(value, "http")
}
