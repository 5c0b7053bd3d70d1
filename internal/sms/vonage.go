// Copyright 2026 The GPS Message Authors
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

package sms

import (
	"context"
	"fmt"

	"github.com/vonage/vonage-go-sdk"
)

// VonageSender implements Sender over the Vonage SMS API.
type VonageSender struct {
	client *vonage.SMSClient
}

// NewVonageSender creates a sender authenticated with an API key/secret pair.
func NewVonageSender(apiKey, apiSecret string) *VonageSender {
	auth := vonage.CreateAuthFromKeySecret(apiKey, apiSecret)
	return &VonageSender{client: vonage.NewSMSClient(auth)}
}

// Send submits one message. A non-zero per-message status from the API is
// treated as a failed send.
func (s *VonageSender) Send(ctx context.Context, to, from, text string) error {
	response, errResponse, err := s.client.Send(from, to, text, vonage.SMSOpts{})
	if err != nil {
		return fmt.Errorf("vonage sms send failed: %w", err)
	}

	if len(errResponse.Messages) > 0 {
		return fmt.Errorf("vonage sms rejected: status %s %s",
			errResponse.Messages[0].Status, errResponse.Messages[0].ErrorText)
	}
	if len(response.Messages) > 0 && response.Messages[0].Status != "0" {
		return fmt.Errorf("vonage sms rejected: status %s", response.Messages[0].Status)
	}

	return nil
}
