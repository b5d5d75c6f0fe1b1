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

package recordkind

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type ipv4Value struct {
	Address string `validate:"required,ipv4"`
}

type ipv6Value struct {
	Address string `validate:"required,ipv6"`
}

type fqdnValue struct {
	FQDN string `validate:"required,fqdn"`
}

type portValue struct {
	Port int32 `validate:"required,min=1,max=65535"`
}

func validateIPv4(address string) error {
	if err := validate.Struct(ipv4Value{Address: address}); err != nil {
		return fmt.Errorf("%q is not a valid IPv4 address: %w", address, err)
	}
	return nil
}

func validateIPv6(address string) error {
	if err := validate.Struct(ipv6Value{Address: address}); err != nil {
		return fmt.Errorf("%q is not a valid IPv6 address: %w", address, err)
	}
	return nil
}

func validateFQDN(name string) error {
	if err := validate.Struct(fqdnValue{FQDN: name}); err != nil {
		return fmt.Errorf("%q is not a valid FQDN: %w", name, err)
	}
	return nil
}

func validatePort(port int32) error {
	if err := validate.Struct(portValue{Port: port}); err != nil {
		return fmt.Errorf("%d is not a valid port: %w", port, err)
	}
	return nil
}

func validateNonEmptyStrings(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("at least one value is required")
	}
	for i, v := range values {
		if v == "" {
			return fmt.Errorf("value %d is empty", i)
		}
	}
	return nil
}

func validateCAATag(tag string) error {
	switch tag {
	case "issue", "issuewild", "iodef":
		return nil
	default:
		return fmt.Errorf("tag %q must be one of issue, issuewild, iodef", tag)
	}
}
