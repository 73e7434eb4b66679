package grpc

// proto.go hand-writes what protoc-gen-go-grpc would emit for
// credit.v1.CreditService. Messages are the application DTOs, carried by the
// JSON codec.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/urjitutjit/creditapprovalsystem/internal/application/dto"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "credit.v1.CreditService"

// Full method names, used by interceptors and clients.
const (
	MethodRegisterCustomer     = "/" + ServiceName + "/RegisterCustomer"
	MethodCheckEligibility     = "/" + ServiceName + "/CheckEligibility"
	MethodCreateLoan           = "/" + ServiceName + "/CreateLoan"
	MethodViewLoan             = "/" + ServiceName + "/ViewLoan"
	MethodViewCustomerLoans    = "/" + ServiceName + "/ViewCustomerLoans"
	MethodGetRepaymentSchedule = "/" + ServiceName + "/GetRepaymentSchedule"
	MethodRecordRepayment      = "/" + ServiceName + "/RecordRepayment"
	MethodMarkLoanDefaulted    = "/" + ServiceName + "/MarkLoanDefaulted"
)

// CreditServiceServer is the server API for CreditService.
type CreditServiceServer interface {
	RegisterCustomer(context.Context, *dto.RegisterCustomerRequest) (*dto.CustomerResponse, error)
	CheckEligibility(context.Context, *dto.CheckEligibilityRequest) (*dto.EligibilityResponse, error)
	CreateLoan(context.Context, *dto.CreateLoanRequest) (*dto.CreateLoanResponse, error)
	ViewLoan(context.Context, *dto.GetLoanRequest) (*dto.LoanResponse, error)
	ViewCustomerLoans(context.Context, *dto.ListCustomerLoansRequest) (*dto.CustomerLoansResponse, error)
	GetRepaymentSchedule(context.Context, *dto.GetLoanRequest) (*dto.RepaymentScheduleResponse, error)
	RecordRepayment(context.Context, *dto.GetLoanRequest) (*dto.LoanStatusResponse, error)
	MarkLoanDefaulted(context.Context, *dto.GetLoanRequest) (*dto.LoanStatusResponse, error)
	mustEmbedUnimplementedCreditServiceServer()
}

// UnimplementedCreditServiceServer provides forward-compatible defaults.
type UnimplementedCreditServiceServer struct{}

func (UnimplementedCreditServiceServer) RegisterCustomer(context.Context, *dto.RegisterCustomerRequest) (*dto.CustomerResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RegisterCustomer not implemented")
}
func (UnimplementedCreditServiceServer) CheckEligibility(context.Context, *dto.CheckEligibilityRequest) (*dto.EligibilityResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CheckEligibility not implemented")
}
func (UnimplementedCreditServiceServer) CreateLoan(context.Context, *dto.CreateLoanRequest) (*dto.CreateLoanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateLoan not implemented")
}
func (UnimplementedCreditServiceServer) ViewLoan(context.Context, *dto.GetLoanRequest) (*dto.LoanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ViewLoan not implemented")
}
func (UnimplementedCreditServiceServer) ViewCustomerLoans(context.Context, *dto.ListCustomerLoansRequest) (*dto.CustomerLoansResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ViewCustomerLoans not implemented")
}
func (UnimplementedCreditServiceServer) GetRepaymentSchedule(context.Context, *dto.GetLoanRequest) (*dto.RepaymentScheduleResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetRepaymentSchedule not implemented")
}
func (UnimplementedCreditServiceServer) RecordRepayment(context.Context, *dto.GetLoanRequest) (*dto.LoanStatusResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RecordRepayment not implemented")
}
func (UnimplementedCreditServiceServer) MarkLoanDefaulted(context.Context, *dto.GetLoanRequest) (*dto.LoanStatusResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method MarkLoanDefaulted not implemented")
}
func (UnimplementedCreditServiceServer) mustEmbedUnimplementedCreditServiceServer() {}

// RegisterCreditServiceServer registers srv with s.
func RegisterCreditServiceServer(s grpclib.ServiceRegistrar, srv CreditServiceServer) {
	s.RegisterService(&_CreditService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _CreditService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CreditServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "RegisterCustomer", Handler: _CreditService_RegisterCustomer_Handler},         //nolint:revive // gRPC handler registration
		{MethodName: "CheckEligibility", Handler: _CreditService_CheckEligibility_Handler},         //nolint:revive // gRPC handler registration
		{MethodName: "CreateLoan", Handler: _CreditService_CreateLoan_Handler},                     //nolint:revive // gRPC handler registration
		{MethodName: "ViewLoan", Handler: _CreditService_ViewLoan_Handler},                         //nolint:revive // gRPC handler registration
		{MethodName: "ViewCustomerLoans", Handler: _CreditService_ViewCustomerLoans_Handler},       //nolint:revive // gRPC handler registration
		{MethodName: "GetRepaymentSchedule", Handler: _CreditService_GetRepaymentSchedule_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "RecordRepayment", Handler: _CreditService_RecordRepayment_Handler},           //nolint:revive // gRPC handler registration
		{MethodName: "MarkLoanDefaulted", Handler: _CreditService_MarkLoanDefaulted_Handler},       //nolint:revive // gRPC handler registration
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "credit/v1/credit.proto",
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditService_RegisterCustomer_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	in := new(dto.RegisterCustomerRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditServiceServer).RegisterCustomer(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: MethodRegisterCustomer}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CreditServiceServer).RegisterCustomer(ctx, req.(*dto.RegisterCustomerRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditService_CheckEligibility_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	in := new(dto.CheckEligibilityRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditServiceServer).CheckEligibility(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: MethodCheckEligibility}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CreditServiceServer).CheckEligibility(ctx, req.(*dto.CheckEligibilityRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditService_CreateLoan_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	in := new(dto.CreateLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditServiceServer).CreateLoan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: MethodCreateLoan}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CreditServiceServer).CreateLoan(ctx, req.(*dto.CreateLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditService_ViewLoan_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	in := new(dto.GetLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditServiceServer).ViewLoan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: MethodViewLoan}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CreditServiceServer).ViewLoan(ctx, req.(*dto.GetLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditService_ViewCustomerLoans_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	in := new(dto.ListCustomerLoansRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditServiceServer).ViewCustomerLoans(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: MethodViewCustomerLoans}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CreditServiceServer).ViewCustomerLoans(ctx, req.(*dto.ListCustomerLoansRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditService_GetRepaymentSchedule_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	in := new(dto.GetLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditServiceServer).GetRepaymentSchedule(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: MethodGetRepaymentSchedule}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CreditServiceServer).GetRepaymentSchedule(ctx, req.(*dto.GetLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditService_RecordRepayment_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	in := new(dto.GetLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditServiceServer).RecordRepayment(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: MethodRecordRepayment}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CreditServiceServer).RecordRepayment(ctx, req.(*dto.GetLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditService_MarkLoanDefaulted_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	in := new(dto.GetLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditServiceServer).MarkLoanDefaulted(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: MethodMarkLoanDefaulted}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CreditServiceServer).MarkLoanDefaulted(ctx, req.(*dto.GetLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// CreditServiceClient is the client API for CreditService.
type CreditServiceClient interface {
	RegisterCustomer(ctx context.Context, in *dto.RegisterCustomerRequest, opts ...grpclib.CallOption) (*dto.CustomerResponse, error)
	CheckEligibility(ctx context.Context, in *dto.CheckEligibilityRequest, opts ...grpclib.CallOption) (*dto.EligibilityResponse, error)
	CreateLoan(ctx context.Context, in *dto.CreateLoanRequest, opts ...grpclib.CallOption) (*dto.CreateLoanResponse, error)
	ViewLoan(ctx context.Context, in *dto.GetLoanRequest, opts ...grpclib.CallOption) (*dto.LoanResponse, error)
	ViewCustomerLoans(ctx context.Context, in *dto.ListCustomerLoansRequest, opts ...grpclib.CallOption) (*dto.CustomerLoansResponse, error)
	GetRepaymentSchedule(ctx context.Context, in *dto.GetLoanRequest, opts ...grpclib.CallOption) (*dto.RepaymentScheduleResponse, error)
	RecordRepayment(ctx context.Context, in *dto.GetLoanRequest, opts ...grpclib.CallOption) (*dto.LoanStatusResponse, error)
	MarkLoanDefaulted(ctx context.Context, in *dto.GetLoanRequest, opts ...grpclib.CallOption) (*dto.LoanStatusResponse, error)
}

type creditServiceClient struct {
	cc grpclib.ClientConnInterface
}

// NewCreditServiceClient returns a client that encodes calls with the JSON
// codec.
func NewCreditServiceClient(cc grpclib.ClientConnInterface) CreditServiceClient {
	return &creditServiceClient{cc: cc}
}

func (c *creditServiceClient) RegisterCustomer(ctx context.Context, in *dto.RegisterCustomerRequest, opts ...grpclib.CallOption) (*dto.CustomerResponse, error) {
	out := new(dto.CustomerResponse)
	if err := c.cc.Invoke(ctx, MethodRegisterCustomer, in, out, withJSON(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *creditServiceClient) CheckEligibility(ctx context.Context, in *dto.CheckEligibilityRequest, opts ...grpclib.CallOption) (*dto.EligibilityResponse, error) {
	out := new(dto.EligibilityResponse)
	if err := c.cc.Invoke(ctx, MethodCheckEligibility, in, out, withJSON(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *creditServiceClient) CreateLoan(ctx context.Context, in *dto.CreateLoanRequest, opts ...grpclib.CallOption) (*dto.CreateLoanResponse, error) {
	out := new(dto.CreateLoanResponse)
	if err := c.cc.Invoke(ctx, MethodCreateLoan, in, out, withJSON(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *creditServiceClient) ViewLoan(ctx context.Context, in *dto.GetLoanRequest, opts ...grpclib.CallOption) (*dto.LoanResponse, error) {
	out := new(dto.LoanResponse)
	if err := c.cc.Invoke(ctx, MethodViewLoan, in, out, withJSON(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *creditServiceClient) ViewCustomerLoans(ctx context.Context, in *dto.ListCustomerLoansRequest, opts ...grpclib.CallOption) (*dto.CustomerLoansResponse, error) {
	out := new(dto.CustomerLoansResponse)
	if err := c.cc.Invoke(ctx, MethodViewCustomerLoans, in, out, withJSON(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *creditServiceClient) GetRepaymentSchedule(ctx context.Context, in *dto.GetLoanRequest, opts ...grpclib.CallOption) (*dto.RepaymentScheduleResponse, error) {
	out := new(dto.RepaymentScheduleResponse)
	if err := c.cc.Invoke(ctx, MethodGetRepaymentSchedule, in, out, withJSON(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *creditServiceClient) RecordRepayment(ctx context.Context, in *dto.GetLoanRequest, opts ...grpclib.CallOption) (*dto.LoanStatusResponse, error) {
	out := new(dto.LoanStatusResponse)
	if err := c.cc.Invoke(ctx, MethodRecordRepayment, in, out, withJSON(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *creditServiceClient) MarkLoanDefaulted(ctx context.Context, in *dto.GetLoanRequest, opts ...grpclib.CallOption) (*dto.LoanStatusResponse, error) {
	out := new(dto.LoanStatusResponse)
	if err := c.cc.Invoke(ctx, MethodMarkLoanDefaulted, in, out, withJSON(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func withJSON(opts []grpclib.CallOption) []grpclib.CallOption {
	return append([]grpclib.CallOption{grpclib.CallContentSubtype(codecName)}, opts...)
}
