/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package recordkind is the single place that knows how each of the eight
// record kinds validates and projects onto the sidecar's wire format
// (§4.2, §9). Per-kind controllers call into here instead of repeating
// validation and projection logic eight times.
package recordkind

// Kind names one of the eight supported record types. Values match the
// "type" path segment of the sidecar's record API.
type Kind string

const (
	KindA     Kind = "A"
	KindAAAA  Kind = "AAAA"
	KindCNAME Kind = "CNAME"
	KindMX    Kind = "MX"
	KindTXT   Kind = "TXT"
	KindNS    Kind = "NS"
	KindSRV   Kind = "SRV"
	KindCAA   Kind = "CAA"
)
