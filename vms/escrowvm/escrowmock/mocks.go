// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package escrowmock

//go:generate go run go.uber.org/mock/mockgen -package=${GOPACKAGE} -destination=certification_sink.go -mock_names=CertificationSink=CertificationSink github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/tracker CertificationSink
//go:generate go run go.uber.org/mock/mockgen -package=${GOPACKAGE} -destination=attestor.go -mock_names=Attestor=Attestor github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/releaser Attestor
