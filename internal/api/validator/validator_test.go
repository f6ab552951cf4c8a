package validator

import "testing"

func TestTraineeLoginRequestValidation(t *testing.T) {
	v := NewValidator()

	cases := []struct {
		name    string
		req     TraineeLoginRequest
		wantErr bool
	}{
		{"valid", TraineeLoginRequest{Email: "a@b.com", Code: "123456"}, false},
		{"missing email", TraineeLoginRequest{Code: "123456"}, true},
		{"bad email", TraineeLoginRequest{Email: "not-an-email", Code: "123456"}, true},
		{"alpha code", TraineeLoginRequest{Email: "a@b.com", Code: "12a456"}, true},
		{"empty code", TraineeLoginRequest{Email: "a@b.com"}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := v.Validate(c.req)
			if (err != nil) != c.wantErr {
				t.Fatalf("Validate(%+v) err = %v, wantErr %v", c.req, err, c.wantErr)
			}
		})
	}
}

func TestStatusTags(t *testing.T) {
	v := NewValidator()

	if err := v.Validate(RequestStatusUpdate{Status: "IN_REVIEW"}); err != nil {
		t.Errorf("IN_REVIEW rejected: %v", err)
	}
	if err := v.Validate(RequestStatusUpdate{Status: "DONE"}); err == nil {
		t.Error("DONE accepted, want rejection")
	}
	if err := v.Validate(EquipmentStatusUpdate{Status: "ISSUED"}); err != nil {
		t.Errorf("ISSUED rejected: %v", err)
	}
	if err := v.Validate(EquipmentStatusUpdate{Status: "LOST"}); err == nil {
		t.Error("LOST accepted, want rejection")
	}
}
